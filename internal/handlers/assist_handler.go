package handlers

import (
	"context"
	"net/http"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/service"
	"kelvi_tracker/internal/webutil"
)

type AssistHandler struct {
	service service.AssistService
}

func NewAssistHandler(s service.AssistService) *AssistHandler {
	return &AssistHandler{service: s}
}

// assist はデコードからレスポンスまでの共通処理
func assist[Req any, Resp any](w http.ResponseWriter, r *http.Request, call func(context.Context, *Req) (*Resp, error)) {
	logger := middleware.GetLogger(r.Context())

	var req Req
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid assist request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := call(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AssistHandler) SolveDoubt(w http.ResponseWriter, r *http.Request) {
	assist[model.DoubtRequest](w, r, h.service.SolveDoubt)
}

func (h *AssistHandler) HelpHomework(w http.ResponseWriter, r *http.Request) {
	assist[model.HomeworkRequest](w, r, h.service.HelpHomework)
}

func (h *AssistHandler) AnalyzePaper(w http.ResponseWriter, r *http.Request) {
	assist[model.PaperAnalysisRequest](w, r, h.service.AnalyzePaper)
}

func (h *AssistHandler) GenerateQuestionPaper(w http.ResponseWriter, r *http.Request) {
	assist[model.QuestionPaperRequest](w, r, h.service.GenerateQuestionPaper)
}
