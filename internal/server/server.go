package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

// Handler executes a request and returns the payload and status code.
type Handler func(r *http.Request) ([]byte, int, error)

type Route struct {
	Action  Action
	Path    string
	Method  Method
	Content string
	Exec    Handler
}

type Server struct {
	name   string
	port   int
	debug  bool
	mutex  *sync.Mutex
	mux    *http.ServeMux
	routes []Route
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		mutex:  new(sync.Mutex),
		mux:    http.NewServeMux(),
		routes: make([]Route, 0),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// AddRoute adds a json route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Handle registers a plain http handler e.g. for metrics.
func (s *Server) Handle(pattern string, handler http.Handler) *Server {
	s.mux.Handle(pattern, handler)
	return s
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	name := runtime.FuncForPC(reflect.ValueOf(route.Exec).Pointer()).Name()
	return func(w http.ResponseWriter, r *http.Request) {
		// we only handle one request at a time,
		// the handlers work on shared maps.
		s.mutex.Lock()
		defer s.mutex.Unlock()
		start := time.Now()
		defer func() {
			if s.debug {
				log.Info().
					Str("handler", name).
					Str("url", r.URL.String()).
					Float64("duration", time.Since(start).Seconds()).
					Msg("completed request")
			}
		}()
		if Method(r.Method) != route.Method {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		b, code, err := route.Exec(r)
		if err != nil {
			s.error(w, err)
			return
		}
		content := route.Content
		if content == "" {
			content = "application/json"
		}
		w.Header().Set("Content-Type", content)
		s.code(w, b, code)
	}
}

// Handler builds the http handler for all the routes.
func (s *Server) Handler() http.Handler {
	for _, route := range s.routes {
		if route.Path != "" {
			s.mux.HandleFunc(fmt.Sprintf("/%s/%s", route.Action, route.Path), s.handle(route))
		} else {
			s.mux.HandleFunc(fmt.Sprintf("/%s", route.Action), s.handle(route))
		}
	}
	return s.mux
}

// Run starts the server
func (s *Server) Run() error {
	handler := s.Handler()
	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), handler); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("error for http request")
	s.code(w, []byte(err.Error()), http.StatusInternalServerError)
}

// Live is the liveness route.
func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead decodes the request body into v.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("remote-address", r.RemoteAddr).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return err
		}
	}
	return nil
}
