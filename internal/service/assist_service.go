package service

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"kelvi_tracker/internal/generation"
	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"
)

//go:generate mockery --name AssistService --output ./mocks --outpkg mocks --case=underscore
type AssistService interface {
	SolveDoubt(ctx context.Context, req *model.DoubtRequest) (*model.AssistResponse, error)
	HelpHomework(ctx context.Context, req *model.HomeworkRequest) (*model.AssistResponse, error)
	AnalyzePaper(ctx context.Context, req *model.PaperAnalysisRequest) (*model.AssistResponse, error)
	GenerateQuestionPaper(ctx context.Context, req *model.QuestionPaperRequest) (*model.QuestionPaperResponse, error)
}

// 画像として受け付ける MIME タイプ
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

type assistService struct {
	generator generation.Generator
	prompts   *promptSet
}

func NewAssistService(generator generation.Generator) (AssistService, error) {
	ps, err := loadPrompts(promptsYAML)
	if err != nil {
		return nil, err
	}
	return &assistService{generator: generator, prompts: ps}, nil
}

func (s *assistService) SolveDoubt(ctx context.Context, req *model.DoubtRequest) (*model.AssistResponse, error) {
	if strings.TrimSpace(req.Question) == "" && req.Image == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Either a question or an image is required.", "question,image", model.ErrInvalidInput)
	}
	images, err := optionalImage(req.Image)
	if err != nil {
		return nil, err
	}
	return s.answer(ctx, "doubt", &s.prompts.Doubt, req, images)
}

func (s *assistService) HelpHomework(ctx context.Context, req *model.HomeworkRequest) (*model.AssistResponse, error) {
	images, err := optionalImage(req.Image)
	if err != nil {
		return nil, err
	}
	return s.answer(ctx, "homework", &s.prompts.Homework, req, images)
}

func optionalImage(image string) ([]string, error) {
	if image == "" {
		return nil, nil
	}
	img, err := toDataURL(image)
	if err != nil {
		return nil, err
	}
	return []string{img}, nil
}

func (s *assistService) AnalyzePaper(ctx context.Context, req *model.PaperAnalysisRequest) (*model.AssistResponse, error) {
	img, err := toDataURL(req.Image)
	if err != nil {
		return nil, err
	}
	return s.answer(ctx, "paper_analysis", &s.prompts.PaperAnalysis, req, []string{img})
}

func (s *assistService) GenerateQuestionPaper(ctx context.Context, req *model.QuestionPaperRequest) (*model.QuestionPaperResponse, error) {
	total := req.TotalMarks()
	if total == 0 {
		return nil, model.NewAppError("NO_QUESTIONS", "Please add questions to chapters.", "chapters", model.ErrInvalidInput)
	}

	out, err := s.answer(ctx, "question_paper", &s.prompts.QuestionPaper, req, nil)
	if err != nil {
		return nil, err
	}
	return &model.QuestionPaperResponse{
		TotalMarks:    total,
		DurationHours: req.DurationHours(),
		Paper:         out.Answer,
	}, nil
}

func (s *assistService) answer(ctx context.Context, kind string, pt *promptTemplate, data any, images []string) (*model.AssistResponse, error) {
	logger := middleware.GetLogger(ctx).With("assist", kind)

	prompt, err := pt.render(data)
	if err != nil {
		logger.Error("Failed to render prompt", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to build the request.", "", err)
	}

	text, err := s.generator.Generate(ctx, generation.Request{
		System:      pt.System,
		Prompt:      prompt,
		Images:      images,
		Temperature: 0.7,
	})
	if err != nil {
		if errors.Is(err, generation.ErrEmptyResponse) {
			logger.Warn("Generation returned an empty answer")
			return nil, model.NewAppError("EMPTY_RESPONSE", "The assistant returned an empty answer. Please try again.", "", err)
		}
		if errors.Is(err, model.ErrUpstream) {
			logger.Warn("Generation failed", "error", err)
			return nil, model.NewAppError("GENERATION_FAILED", "The assistant is unavailable right now. Please try again.", "", err)
		}
		logger.Error("Generation failed unexpectedly", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to get an answer.", "", err)
	}

	logger.Info("Assist answer generated", "chars", len(text), "images", len(images))
	return &model.AssistResponse{Answer: text}, nil
}

// toDataURL は data URL ならそのまま、base64 なら MIME を判定して data URL にする
func toDataURL(image string) (string, error) {
	invalid := model.NewAppError("INVALID_IMAGE", "Image must be a PNG, JPEG, WebP or GIF encoded as base64.", "image", model.ErrInvalidInput)

	if rest, ok := strings.CutPrefix(image, "data:"); ok {
		mime, _, found := strings.Cut(rest, ";base64,")
		if !found || !allowedImageTypes[mime] {
			return "", invalid
		}
		return image, nil
	}

	raw, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return "", invalid
	}
	mime := http.DetectContentType(raw)
	if !allowedImageTypes[mime] {
		return "", invalid
	}
	return "data:" + mime + ";base64," + image, nil
}
