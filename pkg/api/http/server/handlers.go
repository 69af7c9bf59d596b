package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voidshard/etlmon/pkg/api/http/common"
	"github.com/voidshard/etlmon/pkg/structs"
)

func (s *Server) startExecution(w http.ResponseWriter, r *http.Request) {
	req := &structs.StartExecutionRequest{}
	if err := s.unmarshalValid(w, r, req); err != nil {
		return
	}

	id, err := s.svc.StartExecution(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusCreated, &common.IDResponse{ID: id})
}

func (s *Server) finishExecution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}
	req := &structs.FinishExecutionRequest{}
	if err := s.unmarshalValid(w, r, req); err != nil {
		return
	}

	err = s.svc.FinishExecution(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, &common.AckResponse{ID: id, Status: structs.ToStatus(string(req.Status))})
}

func (s *Server) startStep(w http.ResponseWriter, r *http.Request) {
	execID, err := pathID(w, r)
	if err != nil {
		return
	}
	req := &structs.StartStepRequest{}
	if err := s.unmarshalValid(w, r, req); err != nil {
		return
	}

	id, err := s.svc.StartStep(r.Context(), execID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusCreated, &common.IDResponse{ID: id})
}

func (s *Server) finishStep(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}
	req := &structs.FinishStepRequest{}
	if err := s.unmarshalValid(w, r, req); err != nil {
		return
	}

	err = s.svc.FinishStep(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, &common.AckResponse{ID: id, Status: structs.ToStatus(string(req.Status))})
}

func (s *Server) getExecution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}

	e, err := s.svc.GetExecution(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	} else if e == nil {
		http.Error(w, "execution not found", http.StatusNotFound)
		return
	}

	writeJson(w, http.StatusOK, e)
}

func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}

	items, err := s.svc.GetSteps(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, items)
}

func (s *Server) listRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(w, r, common.QueryLimit)
	if err != nil {
		return
	}

	items, err := s.svc.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Debugw("listed executions", "url", r.URL.String(), "items", len(items))

	writeJson(w, http.StatusOK, items)
}

func (s *Server) listFailed(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(w, r, common.QueryLimit)
	if err != nil {
		return
	}

	items, err := s.svc.ListFailed(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, items)
}

func (s *Server) filter(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	if err := unmarshalQuery(w, r, q); err != nil {
		return
	}

	items, err := s.svc.Filter(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, items)
}

func (s *Server) lastExecution(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.LastExecution(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, e)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(w, r, common.QueryLimit)
	if err != nil {
		return
	}

	items, err := s.svc.ListByJobName(r.Context(), mux.Vars(r)["name"], limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, items)
}

func (s *Server) successRate(w http.ResponseWriter, r *http.Request) {
	win, err := unmarshalWindow(w, r)
	if err != nil {
		return
	}
	name := mux.Vars(r)["name"]

	rate, err := s.svc.SuccessRateForJob(r.Context(), name, win)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, &structs.SuccessRateResponse{JobName: name, SuccessRate: rate})
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request) {
	win, err := unmarshalWindow(w, r)
	if err != nil {
		return
	}

	stats, err := s.svc.Statistics(r.Context(), win, r.URL.Query().Get(common.QueryJobName))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, stats)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	recent, err := queryInt(w, r, common.QueryRecent)
	if err != nil {
		return
	}
	failed, err := queryInt(w, r, common.QueryFailed)
	if err != nil {
		return
	}

	d, err := s.svc.Dashboard(r.Context(), recent, failed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJson(w, http.StatusOK, d)
}
