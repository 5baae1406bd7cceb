// Package httpapi exposes the viewer over HTTP.
//
//	POST   /replay                      stateless view of the posted move text
//	POST   /documents                   create a document
//	GET    /documents/{id}              fetch a document
//	PUT    /documents/{id}              replace a document's text
//	DELETE /documents/{id}              delete a document
//	GET    /documents/{id}/view         board state at ?cursor=N&step=first|prev|next|last
//	GET    /documents/{id}/board.svg    rendered board
//	GET    /documents/{id}/board.png    rendered board
//	GET    /healthz
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/IJMacD/chess/internal/msgcat"
	"github.com/IJMacD/chess/internal/obslog"
	"github.com/IJMacD/chess/internal/viewer"
	"github.com/IJMacD/chess/pkg/replaydto"
)

const maxBodySize = 1 << 20

type Server struct {
	svc     *viewer.Service
	catalog *msgcat.Catalog
	srv     *fasthttp.Server
}

func New(svc *viewer.Service, catalog *msgcat.Catalog) *Server {
	s := &Server{svc: svc, catalog: catalog}
	s.srv = &fasthttp.Server{
		Name:               "chess-replay",
		Handler:            s.Handler,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: maxBodySize,
	}
	return s
}

func (s *Server) ListenAndServe(addr string) error { return s.srv.ListenAndServe(addr) }

func (s *Server) Serve(ln net.Listener) error { return s.srv.Serve(ln) }

func (s *Server) Shutdown(ctx context.Context) error { return s.srv.ShutdownWithContext(ctx) }

// Handler routes a request and logs it.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	s.route(ctx)
	obslog.L().Info("http_request",
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	parts := strings.Split(strings.Trim(string(ctx.Path()), "/"), "/")
	method := string(ctx.Method())

	switch {
	case len(parts) == 1 && parts[0] == "healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case len(parts) == 1 && parts[0] == "replay":
		if !allow(ctx, method, fasthttp.MethodPost) {
			return
		}
		s.handleReplay(ctx)
	case len(parts) == 1 && parts[0] == "documents":
		if !allow(ctx, method, fasthttp.MethodPost) {
			return
		}
		s.handleCreate(ctx)
	case len(parts) == 2 && parts[0] == "documents":
		ctx.SetUserValue("id", parts[1])
		switch method {
		case fasthttp.MethodGet:
			s.handleGet(ctx, parts[1])
		case fasthttp.MethodPut:
			s.handleSave(ctx, parts[1])
		case fasthttp.MethodDelete:
			s.handleDelete(ctx, parts[1])
		default:
			allow(ctx, method, fasthttp.MethodGet, fasthttp.MethodPut, fasthttp.MethodDelete)
		}
	case len(parts) == 3 && parts[0] == "documents":
		if !allow(ctx, method, fasthttp.MethodGet) {
			return
		}
		ctx.SetUserValue("id", parts[1])
		switch parts[2] {
		case "view":
			s.handleView(ctx, parts[1])
		case "board.svg":
			s.handleSVG(ctx, parts[1])
		case "board.png":
			s.handlePNG(ctx, parts[1])
		default:
			s.writeError(ctx, fasthttp.StatusNotFound, replaydto.DomainError{Code: replaydto.CodeNotFound, Message: "no such resource"})
		}
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, replaydto.DomainError{Code: replaydto.CodeNotFound, Message: "no such resource"})
	}
}

func (s *Server) handleReplay(ctx *fasthttp.RequestCtx) {
	req, err := cursorRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	text, err := bodyText(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.svc.ViewText(text, req))
}

func (s *Server) handleCreate(ctx *fasthttp.RequestCtx) {
	text, err := bodyText(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	doc, err := s.svc.CreateDocument(ctx, text)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.Response.Header.Set("Location", "/documents/"+doc.ID)
	writeJSON(ctx, fasthttp.StatusCreated, doc)
}

func (s *Server) handleGet(ctx *fasthttp.RequestCtx, id string) {
	doc, err := s.svc.Document(ctx, id)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, doc)
}

func (s *Server) handleSave(ctx *fasthttp.RequestCtx, id string) {
	text, err := bodyText(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	if err := s.svc.SaveDocument(ctx, id, text); err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleDelete(ctx *fasthttp.RequestCtx, id string) {
	if err := s.svc.DeleteDocument(ctx, id); err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleView(ctx *fasthttp.RequestCtx, id string) {
	req, err := cursorRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	v, err := s.svc.View(ctx, id, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, v)
}

func (s *Server) handleSVG(ctx *fasthttp.RequestCtx, id string) {
	req, err := cursorRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	out, err := s.svc.BoardSVG(ctx, id, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.SetContentType("image/svg+xml")
	ctx.SetBody(out)
}

func (s *Server) handlePNG(ctx *fasthttp.RequestCtx, id string) {
	req, err := cursorRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	out, err := s.svc.BoardPNG(ctx, id, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.SetContentType("image/png")
	ctx.SetBody(out)
}

// cursorRequest reads the cursor and step query arguments.
func cursorRequest(ctx *fasthttp.RequestCtx) (viewer.CursorRequest, error) {
	var req viewer.CursorRequest
	args := ctx.QueryArgs()
	if raw := strings.TrimSpace(string(args.Peek("cursor"))); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, &requestError{key: "document.invalid_cursor", value: raw, err: viewer.ErrInvalidRequest}
		}
		req.Cursor = &n
	}
	raw := string(args.Peek("step"))
	step, err := viewer.ParseStep(raw)
	if err != nil {
		return req, &requestError{key: "document.invalid_step", value: raw, err: err}
	}
	req.Step = step
	return req, nil
}

// bodyText returns the move text of a request: the "text" field of a JSON
// body, or the raw body otherwise.
func bodyText(ctx *fasthttp.RequestCtx) (string, error) {
	body := ctx.PostBody()
	if strings.HasPrefix(string(ctx.Request.Header.ContentType()), "application/json") {
		var in struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &in); err != nil {
			return "", &requestError{key: "document.invalid_body", err: viewer.ErrInvalidRequest}
		}
		return in.Text, nil
	}
	return string(body), nil
}

type requestError struct {
	key   string
	value string
	err   error
}

func (e *requestError) Error() string { return e.err.Error() + ": " + e.key }
func (e *requestError) Unwrap() error { return e.err }

func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		msg := s.catalog.RenderOr(re.key, map[string]any{"Value": re.value}, err.Error())
		s.writeError(ctx, fasthttp.StatusBadRequest, replaydto.DomainError{Code: replaydto.CodeBadRequest, Message: msg})
	case errors.Is(err, viewer.ErrInvalidRequest):
		s.writeError(ctx, fasthttp.StatusBadRequest, replaydto.DomainError{Code: replaydto.CodeBadRequest, Message: err.Error()})
	case errors.Is(err, viewer.ErrDocumentNotFound):
		id, _ := ctx.UserValue("id").(string)
		msg := s.catalog.RenderOr("document.not_found", map[string]any{"ID": id}, err.Error())
		s.writeError(ctx, fasthttp.StatusNotFound, replaydto.DomainError{Code: replaydto.CodeNotFound, Message: msg})
	default:
		obslog.L().Error("http_internal_error", zap.ByteString("path", ctx.Path()), zap.Error(err))
		msg := s.catalog.RenderOr("internal", nil, "internal error")
		s.writeError(ctx, fasthttp.StatusInternalServerError, replaydto.DomainError{Code: replaydto.CodeInternal, Message: msg, Retryable: true})
	}
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, e replaydto.DomainError) {
	writeJSON(ctx, status, e)
}

func allow(ctx *fasthttp.RequestCtx, method string, allowed ...string) bool {
	for _, m := range allowed {
		if m == method {
			return true
		}
	}
	ctx.Response.Header.Set("Allow", strings.Join(allowed, ", "))
	writeJSON(ctx, fasthttp.StatusMethodNotAllowed, replaydto.DomainError{Code: replaydto.CodeBadRequest, Message: "method not allowed"})
	return false
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		obslog.L().Error("http_encode_error", zap.Error(err))
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(raw)
}
