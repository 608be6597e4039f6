package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"commander/db"
	"commander/model"

	"go.uber.org/zap"
)

// handleListCommands returns every stored command.
// GET /api/commands -> 200 []CommandReadDto
func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	repo := s.store.Repository()
	commands, err := repo.GetAllCommands(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ToReadDtos(commands))
}

// handleGetCommand returns one command.
// GET /api/commands/{id} -> 200 CommandReadDto | 404
func (s *Server) handleGetCommand(w http.ResponseWriter, r *http.Request) {
	id, ok := commandID(w, r)
	if !ok {
		return
	}
	repo := s.store.Repository()
	cmd, err := repo.GetCommandByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ToReadDto(*cmd))
}

// handleCreateCommand stores a new command and points the client at it.
// POST /api/commands -> 201 CommandReadDto + Location | 400
func (s *Server) handleCreateCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandCreateDto
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.validOrProblem(w, req) {
		return
	}

	repo := s.store.Repository()
	cmd := FromCreateDto(req)
	if err := repo.CreateCommand(&cmd); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if err := repo.SaveChanges(r.Context()); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	resp := ToReadDto(cmd)
	w.Header().Set("Location", commandLocation(resp.ID))
	writeJSON(w, http.StatusCreated, resp)
}

// handleUpdateCommand overwrites every field of an existing command.
// PUT /api/commands/{id} -> 204 | 400 | 404
func (s *Server) handleUpdateCommand(w http.ResponseWriter, r *http.Request) {
	id, ok := commandID(w, r)
	if !ok {
		return
	}
	var req CommandUpdateDto
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.validOrProblem(w, req) {
		return
	}

	repo := s.store.Repository()
	cmd, err := repo.GetCommandByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	ApplyUpdateDto(req, cmd)
	s.commit(w, r, repo, repo.UpdateCommand, cmd)
}

// handlePatchCommand applies a JSON Patch document to the update shape of an
// existing command. The stored command is only written when the patched
// document satisfies every constraint.
// PATCH /api/commands/{id} -> 204 | 400 ValidationProblem | 404
func (s *Server) handlePatchCommand(w http.ResponseWriter, r *http.Request) {
	id, ok := commandID(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	patch, err := decodePatch(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON Patch: "+err.Error())
		return
	}

	repo := s.store.Repository()
	cmd, err := repo.GetCommandByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	patched, err := applyPatch(ToUpdateDto(*cmd), patch)
	if err != nil {
		p := problems{}
		p.add("patch", err.Error())
		writeProblem(w, p)
		return
	}
	if !s.validOrProblem(w, patched) {
		return
	}

	ApplyUpdateDto(patched, cmd)
	s.commit(w, r, repo, repo.UpdateCommand, cmd)
}

// handleDeleteCommand removes an existing command.
// DELETE /api/commands/{id} -> 204 | 404
func (s *Server) handleDeleteCommand(w http.ResponseWriter, r *http.Request) {
	id, ok := commandID(w, r)
	if !ok {
		return
	}
	repo := s.store.Repository()
	cmd, err := repo.GetCommandByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.commit(w, r, repo, repo.DeleteCommand, cmd)
}

// commit stages cmd with stage, saves, and answers 204 on success.
func (s *Server) commit(w http.ResponseWriter, r *http.Request, repo db.Repository, stage func(*model.Command) error, cmd *model.Command) {
	if err := stage(cmd); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if err := repo.SaveChanges(r.Context()); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) validOrProblem(w http.ResponseWriter, dto any) bool {
	p := problems{}
	if err := validateDto(dto, p); err != nil {
		s.logger.Error("validate request", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "validation failed")
		return false
	}
	if len(p) > 0 {
		writeProblem(w, p)
		return false
	}
	return true
}

// writeStoreError maps repository errors onto responses. Not-found carries
// no body.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, db.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		s.logger.Error("store failure",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "store failure")
	}
}

func commandID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		p := problems{}
		p.add("id", fmt.Sprintf("The value '%s' is not valid.", raw))
		writeProblem(w, p)
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func commandLocation(id int) string {
	return CommandsPath + "/" + strconv.Itoa(id)
}
