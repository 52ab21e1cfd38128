package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/scene"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.scenes.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"scenes": ids})
}

func (s *Server) handlePutScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateSceneID(id); err != nil {
		s.respondError(w, err)
		return
	}

	sc, err := scene.Read(r.Body)
	if err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "decode scene"))
		return
	}
	if err := s.scenes.Put(r.Context(), id, sc); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"objects": len(sc.Objects),
	})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	_, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateSceneID(id); err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.scenes.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	_, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"objects": sc.ObjectNames()})
}

// opRequest is the shared body for operator endpoints.
type opRequest struct {
	Object string `json:"object,omitempty"`
	Roster string `json:"roster,omitempty"`
	Key    string `json:"key,omitempty"`
	GroupA string `json:"group_a,omitempty"`
	GroupB string `json:"group_b,omitempty"`
	Pair   string `json:"pair,omitempty"`
}

func (s *Server) decodeOp(r *http.Request) (opRequest, error) {
	var req opRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, nil
	}
	if err := decodeJSON(r, &req); err != nil {
		return req, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return req, nil
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeOp(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if req.Roster == "" {
		names := s.runner.Rosters().ListNames()
		if len(names) > 0 {
			req.Roster = names[0]
		}
	}

	res, err := s.runner.Check(r.Context(), id, sc, req.Object, req.Roster)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeOp(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	res, err := s.runner.Fill(r.Context(), id, sc, req.Object)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.scenes.Put(r.Context(), id, sc); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeOp(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	groupA, groupB := req.GroupA, req.GroupB
	if req.Pair != "" {
		found := false
		for _, p := range s.runner.Rosters().Pairs {
			if p.String() == req.Pair {
				groupA, groupB = p.A, p.B
				found = true
				break
			}
		}
		if !found {
			s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "no configured pair %q", req.Pair))
			return
		}
	}

	res, err := ops.SplitRequest{
		Object: req.Object,
		Key:    req.Key,
		GroupA: groupA,
		GroupB: groupB,
	}.Apply(sc)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.scenes.Put(r.Context(), id, sc); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleTidy(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeOp(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	res, err := ops.TidyRequest{Object: req.Object}.Apply(sc)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.scenes.Put(r.Context(), id, sc); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handlePrune(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeOp(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id, sc, err := s.loadScene(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	res, err := ops.PruneRequest{Object: req.Object}.Apply(sc)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.scenes.Put(r.Context(), id, sc); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
