package json

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"reflect"

	"github.com/drakos74/som-explain/internal/storage"
)

const (
	filename = "%s.events.log"
)

// Registry appends json encoded events to one log file per key.
type Registry struct {
	dir  string
	root string
}

func NewEventRegistry(root string) *Registry {
	return &Registry{
		dir:  path.Join(storage.DefaultDir, storage.RegistryDir),
		root: root,
	}
}

// WithDir overrides the base directory of the registry.
func (e *Registry) WithDir(dir string) *Registry {
	e.dir = dir
	return e
}

func (e *Registry) Root() string {
	return e.root
}

func (e *Registry) filePath(k storage.K) string {
	return path.Join(e.dir, e.root, k.Run)
}

func (e *Registry) Add(key storage.K, value interface{}) error {
	filePath := e.filePath(key)
	if err := os.MkdirAll(filePath, os.ModePerm); err != nil {
		return fmt.Errorf("could not make dir: %s: %w", filePath, err)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value '%+v': %w", value, err)
	}
	f, err := os.OpenFile(path.Join(filePath, fmt.Sprintf(filename, key.Label)), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("could not write log file for '%+v': %w", key, err)
	}
	return nil
}

// GetAll appends the logged events to the given slice pointer.
func (e *Registry) GetAll(key storage.K, values interface{}) error {
	v := reflect.ValueOf(values)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("only accepting slice pointers as placeholder for the results")
	}
	slice := v.Elem()
	t := slice.Type().Elem()

	fileName := path.Join(e.filePath(key), fmt.Sprintf(filename, key.Label))
	f, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("could not open file '%s': %w", fileName, storage.NotFoundErr)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		instance := reflect.New(t)
		if err := json.Unmarshal(line, instance.Interface()); err != nil {
			return fmt.Errorf("could not decode event value '%s': %w", string(line), storage.CouldNotLoadErr)
		}
		slice = reflect.Append(slice, instance.Elem())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read events: %w", err)
	}

	v.Elem().Set(slice)
	return nil
}
