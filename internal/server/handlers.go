package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"unicode/utf8"

	"github.com/jonathan/novelty-score/internal/ingest"
	"github.com/jonathan/novelty-score/internal/interpret"
	"github.com/jonathan/novelty-score/internal/novelty"
	"github.com/jonathan/novelty-score/internal/types"
)

// maxFormMemory is the part of a multipart form held in memory; the rest spills to disk.
const maxFormMemory = 32 << 20

// pageData is what the page templates render.
type pageData struct {
	Title    string
	Active   string
	Mode     types.InputKind
	Banner   string
	Loading  bool
	Text     string
	View     *interpret.View
	Legend   []interpret.Band
	Outcomes []ingest.Outcome
}

// TextLength is the character count shown under the text area.
func (d pageData) TextLength() int {
	return utf8.RuneCountInString(d.Text)
}

// noveltyPage builds the novelty check page from the controller's current state.
func (s *Server) noveltyPage(text string) pageData {
	state := s.controller.State()
	data := pageData{
		Title:   "Check Novelty",
		Active:  "novelty",
		Mode:    s.controller.Mode(),
		Banner:  s.controller.Banner(),
		Loading: state.Status == novelty.Loading,
		Text:    text,
		Legend:  interpret.Legend(),
	}
	if state.Status == novelty.Success {
		view := interpret.Present(state.Result)
		data.View = &view
	}
	return data
}

// handleNoveltyPage shows the novelty check form and the last outcome.
// A mode query parameter switches between text and file input.
func (s *Server) handleNoveltyPage(w http.ResponseWriter, r *http.Request) {
	if mode := r.URL.Query().Get("mode"); mode != "" {
		if err := s.controller.SetMode(types.InputKind(mode)); err != nil {
			data := s.noveltyPage("")
			data.Banner = novelty.Message(err)
			s.render(w, http.StatusBadRequest, "novelty", data)
			return
		}
	}
	s.render(w, http.StatusOK, "novelty", s.noveltyPage(""))
}

// handleNoveltyCheck validates and submits the candidate from the form.
func (s *Server) handleNoveltyCheck(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		data := s.noveltyPage("")
		data.Banner = "Invalid form: " + err.Error()
		s.render(w, http.StatusBadRequest, "novelty", data)
		return
	}

	mode := types.InputKind(r.FormValue("mode"))
	switch mode {
	case "":
		mode = types.InputText
	case types.InputText, types.InputFile:
	default:
		data := s.noveltyPage("")
		data.Banner = fmt.Sprintf("unknown input mode %q", mode)
		s.render(w, http.StatusBadRequest, "novelty", data)
		return
	}
	text := r.FormValue("text")

	input, err := readCandidate(r, mode, text)
	if err == nil {
		err = s.controller.SetMode(mode)
	}
	if err == nil {
		err = s.controller.SetInput(input)
	}
	if err == nil {
		// The check outlives a disconnected browser; the next page load shows it.
		_, err = s.controller.Submit(context.WithoutCancel(r.Context()))
	}

	data := s.noveltyPage(text)
	if errors.Is(err, novelty.ErrBusy) || errors.Is(err, novelty.ErrClosed) || (err != nil && data.Banner == "") {
		data.Banner = novelty.Message(err)
	}
	s.render(w, HTTPStatus(err), "novelty", data)
}

// handleIngestPage shows the ingest form.
func (s *Server) handleIngestPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "ingest", pageData{Title: "Ingest Proposal", Active: "ingest"})
}

// handleIngest uploads every document in the form.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Ingest Proposal", Active: "ingest"}

	if err := parseForm(r); err != nil {
		data.Banner = "Invalid form: " + err.Error()
		s.render(w, http.StatusBadRequest, "ingest", data)
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["file"]
	}

	files := make([]*types.FileInput, 0, len(headers))
	for _, fh := range headers {
		file, err := readFileHeader(fh)
		if err != nil {
			data.Banner = err.Error()
			s.render(w, http.StatusBadRequest, "ingest", data)
			return
		}
		files = append(files, file)
	}

	outcomes, err := s.ingest.Many(r.Context(), files, r.FormValue("title"))
	data.Outcomes = outcomes
	if err != nil && outcomes == nil {
		data.Banner = novelty.Message(err)
	}
	s.render(w, HTTPStatus(err), "ingest", data)
}

// handleHealth reports this server's health and the scoring service's.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.client.Health(r.Context())
	if err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status":          "degraded",
			"scoring_service": "unreachable",
			"error":           novelty.Message(err),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":          "ok",
		"scoring_service": health.Status,
	})
}

// parseForm accepts both multipart and URL-encoded bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// readCandidate builds the candidate for mode. A file mode form without a
// file yields a nil candidate, which fails validation as a missing file.
func readCandidate(r *http.Request, mode types.InputKind, text string) (types.CandidateInput, error) {
	if mode != types.InputFile {
		return types.NewTextInput(text), nil
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		return nil, nil
	}
	file, err := readFileHeader(r.MultipartForm.File["file"][0])
	if err != nil {
		return nil, err
	}
	return file, nil
}

func readFileHeader(fh *multipart.FileHeader) (*types.FileInput, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return types.NewFileInput(fh.Filename, content), nil
}
