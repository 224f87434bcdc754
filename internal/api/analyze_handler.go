package api

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/cubeworks/cubeinsight/internal/ai"
)

// AnalyzeHandler serves question resolution and the preset catalog.
// Resolution is serialized: the dataset connection is single-threaded
// and a second concurrent question would only queue behind the model
// call, so overlapping requests are rejected with 409 instead.
type AnalyzeHandler struct {
	resolver *ai.Resolver
	busy     sync.Mutex
}

func NewAnalyzeHandler(resolver *ai.Resolver) *AnalyzeHandler {
	return &AnalyzeHandler{resolver: resolver}
}

// AnalyzeRequest is the POST /api/v1/analyze body.
type AnalyzeRequest struct {
	Question string `json:"question"`
}

// Analyze resolves one natural-language question.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question is required",
		})
	}

	if !h.busy.TryLock() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "이전 질문을 처리 중입니다. 잠시 후 다시 시도해 주세요.",
		})
	}
	defer h.busy.Unlock()

	result := h.resolver.Resolve(c.UserContext(), question)
	return c.JSON(result)
}

// Presets returns the curated question catalog for UI rendering.
func (h *AnalyzeHandler) Presets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": ai.PresetCategories(),
	})
}
