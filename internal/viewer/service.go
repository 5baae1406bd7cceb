// Package viewer serves board views of stored move lists at a cursor.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/IJMacD/chess/internal/board"
	"github.com/IJMacD/chess/internal/movestore"
	"github.com/IJMacD/chess/internal/msgcat"
	"github.com/IJMacD/chess/internal/obslog"
	"github.com/IJMacD/chess/internal/render"
	"github.com/IJMacD/chess/internal/replay"
	"github.com/IJMacD/chess/internal/rules"
	"github.com/IJMacD/chess/pkg/replaydto"
)

type staticErr string

func (e staticErr) Error() string { return string(e) }

var (
	ErrDocumentNotFound error = staticErr("document not found")
	ErrInvalidRequest   error = staticErr("invalid request")
)

// CursorRequest selects the turn to show. A nil Cursor means the last turn;
// Step is applied after Cursor.
type CursorRequest struct {
	Cursor *int
	Step   Step
}

// At is a CursorRequest for a fixed turn.
func At(pos int) CursorRequest { return CursorRequest{Cursor: &pos} }

type Service struct {
	store   movestore.Store
	catalog *msgcat.Catalog
	render  render.Options
}

func NewService(store movestore.Store, catalog *msgcat.Catalog, opts render.Options) *Service {
	return &Service{store: store, catalog: catalog, render: opts}
}

func (s *Service) CreateDocument(ctx context.Context, text string) (*replaydto.Document, error) {
	doc, err := s.store.Create(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	obslog.L().Info("document_create", zap.String("id", doc.ID), zap.Int("turns", replay.TotalTurns(text)))
	return toDTO(doc), nil
}

func (s *Service) Document(ctx context.Context, id string) (*replaydto.Document, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(doc), nil
}

func (s *Service) SaveDocument(ctx context.Context, id, text string) error {
	if err := s.store.Save(ctx, id, text); err != nil {
		if errors.Is(err, movestore.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
		}
		return fmt.Errorf("save document: %w", err)
	}
	obslog.L().Info("document_save", zap.String("id", id), zap.Int("turns", replay.TotalTurns(text)))
	return nil
}

func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, movestore.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
		}
		return fmt.Errorf("delete document: %w", err)
	}
	obslog.L().Info("document_delete", zap.String("id", id))
	return nil
}

// View replays the stored document up to the requested cursor.
func (s *Service) View(ctx context.Context, id string, req CursorRequest) (*replaydto.ViewState, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.ViewText(doc.Text, req)
	v.DocumentID = doc.ID
	return v, nil
}

// ViewText replays text without touching the store. A failing move does
// not make the view fail: the board before that move is returned with
// Failure describing it.
func (s *Service) ViewText(text string, req CursorRequest) *replaydto.ViewState {
	b, cur, err := s.replay(text, req)
	v := &replaydto.ViewState{
		Cursor:     cur.Pos,
		TotalTurns: cur.Total,
		Applied:    cur.Pos,
		Board:      b.Rows(),
	}
	var te *replay.TurnError
	if errors.As(err, &te) {
		v.Applied = te.Turn - 1
		v.Failure = s.failure(te)
		obslog.L().Debug("replay_failure",
			zap.Int("turn", te.Turn),
			zap.String("colour", te.Colour.String()),
			zap.String("token", te.Token),
			zap.String("code", v.Failure.Code),
			zap.Error(te.Err))
	}
	return v
}

// BoardSVG renders the document's board at the cursor as SVG.
func (s *Service) BoardSVG(ctx context.Context, id string, req CursorRequest) ([]byte, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	b, _, _ := s.replay(doc.Text, req)
	return render.SVG(b, s.render), nil
}

// BoardPNG renders the document's board at the cursor as PNG.
func (s *Service) BoardPNG(ctx context.Context, id string, req CursorRequest) ([]byte, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	b, _, _ := s.replay(doc.Text, req)
	out, err := render.PNG(ctx, b, s.render)
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, id string) (*movestore.Document, error) {
	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return doc, nil
}

func (s *Service) replay(text string, req CursorRequest) (board.Board, Cursor, error) {
	total := replay.TotalTurns(text)
	cur := Cursor{Pos: total, Total: total}
	if req.Cursor != nil {
		cur.Pos = *req.Cursor
	}
	cur = cur.Apply(req.Step)
	b, err := replay.Replay(text, cur.Pos)
	return b, cur, err
}

func (s *Service) failure(te *replay.TurnError) *replaydto.TurnFailure {
	f := &replaydto.TurnFailure{
		Turn:   te.Turn,
		Number: te.Number,
		Colour: te.Colour.String(),
		Token:  te.Token,
		Code:   FailureCode(te.Err),
	}
	data := map[string]any{"Turn": f.Turn, "Number": f.Number, "Colour": f.Colour, "Token": f.Token}
	f.Message = te.Error()
	if s.catalog != nil {
		f.Message = s.catalog.RenderOr("replay.failure."+f.Code, data, f.Message)
	}
	return f
}

// FailureCode maps a rules error to its stable code. A move with
// candidates that cannot reach the destination is reported as illegal.
func FailureCode(err error) string {
	switch {
	case errors.Is(err, rules.ErrIllegalCastling):
		return replaydto.CodeIllegalCastling
	case errors.Is(err, rules.ErrIllegalPromotion):
		return replaydto.CodeIllegalPromotion
	case errors.Is(err, rules.ErrIllegalMove):
		return replaydto.CodeIllegalMove
	case errors.Is(err, rules.ErrNoLegalSource):
		return replaydto.CodeNoLegalSource
	}
	return "unknown"
}

func toDTO(d *movestore.Document) *replaydto.Document {
	return &replaydto.Document{ID: d.ID, Text: d.Text, UpdatedAt: d.UpdatedAt}
}
