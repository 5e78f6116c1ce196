package main

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"flag"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/e1732a364fed/sharelink/registry"
	"github.com/e1732a364fed/sharelink/server"
	"github.com/e1732a364fed/sharelink/sharelink"
	"github.com/e1732a364fed/sharelink/utils"
)

const defaultApiServerAddr = "127.0.0.1:48345"

var (
	enableApiServer     bool
	apiServerAddr       string
	apiServerPathPrefix string
)

func init() {
	flag.BoolVar(&enableApiServer, "ea", false, "enable api server")
	flag.StringVar(&apiServerAddr, "addr", defaultApiServerAddr, "api server listen address")
	flag.StringVar(&apiServerPathPrefix, "spp", "/api", "api Server Path Prefix, must start with '/' ")
}

type auth struct {
	expectedUsernameHash [32]byte
	expectedPasswordHash [32]byte
}

type apiServer struct {
	admin_auth *auth //为nil时不验证
	parser     sharelink.Parser
	srv        *http.Server
}

// newApiServer 若 pass 为空, 则不启用 basic auth
func newApiServer(user, pass string, p sharelink.Parser) *apiServer {
	s := &apiServer{parser: p}

	if pass != "" {
		s.admin_auth = &auth{
			expectedUsernameHash: sha256.Sum256([]byte(user)),
			expectedPasswordHash: sha256.Sum256([]byte(pass)),
		}
	}
	return s
}

// tryRunApiServer 非阻塞
func tryRunApiServer() *apiServer {
	var adminPass string
	if appConf != nil {
		adminPass = appConf.AdminPass
	}
	if adminPass == "" {
		utils.Warn("api server running without admin_pass, every request is accepted")
	}

	ser := newApiServer("admin", adminPass, sharelink.Parser{
		MaxInputSize: maxInputSize,
		Workers:      workers,
	})

	ser.srv = &http.Server{
		Addr:         apiServerAddr,
		Handler:      ser.routes(apiServerPathPrefix),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if ce := utils.CanLogInfo("Start Api Server"); ce != nil {
		ce.Write(zap.String("addr", apiServerAddr), zap.String("prefix", apiServerPathPrefix))
	}

	go func() {
		if err := ser.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if ce := utils.CanLogErr("Api Server failed"); ce != nil {
				ce.Write(zap.Error(err))
			}
		}
	}()
	return ser
}

func (ser *apiServer) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ser.shutdown(ctx)
}

func (ser *apiServer) shutdown(ctx context.Context) error {
	if ser.srv == nil {
		return nil
	}
	err := ser.srv.Shutdown(ctx)
	if err != nil {
		if ce := utils.CanLogErr("Api Server shutdown failed"); ce != nil {
			ce.Write(zap.Error(err))
		}
	}
	return err
}

func (ser *apiServer) routes(prefix string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if ser.admin_auth != nil {
		r.Use(ser.basicAuth)
	}

	r.Route(prefix, func(r chi.Router) {
		r.Get("/capabilities", ser.capabilities)
		r.Post("/parse", ser.parse)
		r.Post("/encode", ser.encode)
	})
	return r
}

func (ser *apiServer) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		thisun, thispass, ok := r.BasicAuth()
		if ok {
			usernameHash := sha256.Sum256([]byte(thisun))
			passwordHash := sha256.Sum256([]byte(thispass))

			usernameMatch := (subtle.ConstantTimeCompare(usernameHash[:], ser.admin_auth.expectedUsernameHash[:]) == 1)
			passwordMatch := (subtle.ConstantTimeCompare(passwordHash[:], ser.admin_auth.expectedPasswordHash[:]) == 1)

			if usernameMatch && passwordMatch {
				next.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

type errorResponse struct {
	Message string `json:"message"`
}

type capabilitiesResponse struct {
	Schemes []string            `json:"schemes"`
	Tables  map[string][]string `json:"tables"`
}

func (ser *apiServer) capabilities(w http.ResponseWriter, r *http.Request) {
	resp := capabilitiesResponse{
		Schemes: sharelink.Schemes(),
		Tables:  make(map[string][]string),
	}
	for _, t := range registry.All() {
		resp.Tables[t.Name] = t.Set.Names()
	}
	render.JSON(w, r, resp)
}

type parseResponse struct {
	Servers     []server.Record `json:"servers"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// POST 的 body 就是订阅文本
func (ser *apiServer) parse(w http.ResponseWriter, r *http.Request) {
	bs, err := io.ReadAll(io.LimitReader(r.Body, int64(ser.maxInputSize())+1))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Message: err.Error()})
		return
	}

	c := &sharelink.Collector{Next: sharelink.ZapSink{}}
	p := ser.parser
	p.Sink = c

	list, err := p.Parse(string(bs))
	resp := parseResponse{
		Servers:     server.Records(list),
		Diagnostics: c.Messages(),
	}
	if err != nil {
		resp.Error = err.Error()
		if errors.Is(err, sharelink.ErrInputTooLarge) {
			render.Status(r, http.StatusRequestEntityTooLarge)
		} else {
			render.Status(r, http.StatusUnprocessableEntity)
		}
	}
	render.JSON(w, r, resp)
}

func (ser *apiServer) maxInputSize() int {
	if ser.parser.MaxInputSize <= 0 {
		return sharelink.DefaultMaxInputSize
	}
	return ser.parser.MaxInputSize
}

type encodeResult struct {
	Link  string `json:"link,omitempty"`
	Netch string `json:"netch,omitempty"`
	Error string `json:"error,omitempty"`
}

// POST 的 body 是 server.Record 的 json 数组, 返回等长的结果数组
func (ser *apiServer) encode(w http.ResponseWriter, r *http.Request) {
	var records []server.Record
	if err := render.DecodeJSON(io.LimitReader(r.Body, int64(ser.maxInputSize())), &records); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Message: err.Error()})
		return
	}

	results := make([]encodeResult, len(records))
	for i, rec := range records {
		s, err := server.FromRecord(rec)
		if err == nil {
			s, err = sharelink.Validate(s)
		}
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Link = sharelink.Encode(s)
		if results[i].Netch, err = sharelink.EncodeNetch(s); err != nil {
			if ce := utils.CanLogErr("api encode netch failed"); ce != nil {
				ce.Write(zap.Int("index", i), zap.Error(err))
			}
			results[i].Error = err.Error()
		}
	}
	render.JSON(w, r, results)
}
