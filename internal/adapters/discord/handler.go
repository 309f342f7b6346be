package discord

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"draftbot/internal/config"
	"draftbot/internal/ports/input"
	"draftbot/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	eventUseCase  input.EventUseCase
	signupUseCase input.SignupUseCase
	podUseCase    input.PodUseCase
	translator    output.T
	cfg           *config.Config

	// members caches guild member lookups (display names, roles); entries
	// expire so role changes are picked up within a few minutes.
	members *cache.Cache

	// redrawLocks serializes embed redraws per message so concurrent edits
	// cannot land out of order and leave a stale view.
	redrawMu    sync.Mutex
	redrawLocks map[string]*sync.Mutex
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	signupUseCase input.SignupUseCase,
	podUseCase input.PodUseCase,
	translator output.T,
	cfg *config.Config,
) *Handler {
	return &Handler{
		eventUseCase:  eventUseCase,
		signupUseCase: signupUseCase,
		podUseCase:    podUseCase,
		translator:    translator,
		cfg:           cfg,
		members:       cache.New(5*time.Minute, 10*time.Minute),
		redrawLocks:   make(map[string]*sync.Mutex),
	}
}

func (h *Handler) t(key string, data map[string]any) string {
	return h.translator.T(h.cfg.Locale, key, data)
}

func (h *Handler) redrawLock(messageID string) *sync.Mutex {
	h.redrawMu.Lock()
	defer h.redrawMu.Unlock()
	mu, ok := h.redrawLocks[messageID]
	if !ok {
		mu = &sync.Mutex{}
		h.redrawLocks[messageID] = mu
	}
	return mu
}

// forgetRedrawLock drops the per-message lock once the post is gone, so the
// table does not grow with every event the process ever posted.
func (h *Handler) forgetRedrawLock(messageID string) {
	if messageID == "" {
		return
	}
	h.redrawMu.Lock()
	delete(h.redrawLocks, messageID)
	h.redrawMu.Unlock()
}
