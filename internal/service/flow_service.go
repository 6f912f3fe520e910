package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"flowcraft/internal/canvas"
	"flowcraft/internal/domain"
	"flowcraft/internal/generator"
)

// How many screens generate automatically when a flow is created; the
// rest stay draft until the user asks for them.
const autoGenerateLimit = 6

// Generator is the slice of the content-generator client the flow
// service depends on. A mock implementation stands in for tests.
type Generator interface {
	GenerateFlow(ctx context.Context, req domain.FlowRequest) (*domain.Flow, error)
	GenerateScreenHTML(ctx context.Context, req domain.FlowRequest, screen domain.Screen) (string, error)
	MagicEdit(ctx context.Context, style, originalHTML, request string) (string, error)
	AnalyzeFlow(ctx context.Context, req domain.FlowRequest, screens []domain.Screen) ([]generator.Insight, error)
	ResearchFlow(ctx context.Context, kind generator.ResearchKind, req domain.FlowRequest) (*generator.ResearchResult, error)
}

// ─────────────────────────────────────────────────────────────
// FlowService — generation orchestration over the canvas engine
// ─────────────────────────────────────────────────────────────

// FlowService drives the content generator: creating flows, filling in
// screen markup concurrently, and the magic-edit/analysis/research
// calls. Each flow gets a session token; responses arriving after the
// canvas moved on to a new flow carry a stale token and are dropped.
type FlowService struct {
	engine  *canvas.Engine
	gen     Generator
	emitter EventEmitter
	running runningGuard

	mu       sync.Mutex
	session  string
	req      domain.FlowRequest
	appName  string
	appDesc  string
	insights []generator.Insight
	research map[generator.ResearchKind]*generator.ResearchResult
}

// NewFlowService creates a FlowService.
func NewFlowService(engine *canvas.Engine, gen Generator, emitter EventEmitter) *FlowService {
	return &FlowService{
		engine:   engine,
		gen:      gen,
		emitter:  emitter,
		session:  uuid.New().String(),
		research: map[generator.ResearchKind]*generator.ResearchResult{},
	}
}

// StartFlow generates a new flow and populates the canvas. The first
// screens begin generating immediately, each on its own goroutine;
// their completions land independently, in any order.
func (s *FlowService) StartFlow(ctx context.Context, req domain.FlowRequest) (*domain.Flow, error) {
	if req.Idea == "" {
		return nil, fmt.Errorf("describe your app idea first")
	}

	flow, err := s.gen.GenerateFlow(ctx, req)
	if err != nil {
		return nil, err
	}

	screens := flow.Screens
	for i := range screens {
		screens[i].ID = uuid.New().String()
		screens[i].HTML = ""
		if i < autoGenerateLimit {
			screens[i].Status = domain.StatusGenerating
		} else {
			screens[i].Status = domain.StatusDraft
		}
		if screens[i].Elements == nil {
			screens[i].Elements = []string{}
		}
	}

	s.mu.Lock()
	s.session = uuid.New().String()
	s.req = req
	s.appName = flow.AppName
	s.appDesc = flow.Description
	s.insights = nil
	s.research = map[generator.ResearchKind]*generator.ResearchResult{}
	session := s.session
	s.mu.Unlock()

	s.engine.SetScreens(screens, req.Platform)
	// The model's positions are advisory; the grid is authoritative
	// and also brings the pan back to the origin.
	s.engine.AutoLayout()

	s.emitter.Emit(ctx, EventFlowCreated, map[string]any{
		"appName":     flow.AppName,
		"description": flow.Description,
	})

	for i := range screens {
		if i < autoGenerateLimit {
			go s.generate(ctx, session, screens[i].ID)
		}
	}
	return flow, nil
}

// GenerateScreen starts generation for one draft screen. Screens
// already generating or completed are left alone.
func (s *FlowService) GenerateScreen(ctx context.Context, screenID string) error {
	screen, ok := s.engine.Screen(screenID)
	if !ok {
		return fmt.Errorf("screen %s not found", screenID)
	}
	if screen.Status == domain.StatusGenerating || screen.Status == domain.StatusCompleted {
		return nil
	}

	s.engine.UpdateScreenStatus(screenID, domain.StatusGenerating, "")
	s.emitter.Emit(ctx, EventScreenUpdated, map[string]any{"id": screenID, "status": domain.StatusGenerating})

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	go s.generate(ctx, session, screenID)
	return nil
}

// RegenerateScreen resets a screen to draft, discarding its markup, so
// the user can trigger a fresh attempt.
func (s *FlowService) RegenerateScreen(ctx context.Context, screenID string) {
	if s.engine.UpdateScreenStatus(screenID, domain.StatusDraft, "") {
		s.emitter.Emit(ctx, EventScreenUpdated, map[string]any{"id": screenID, "status": domain.StatusDraft})
	}
}

// generate runs one screen's generation request to completion and
// applies the result, unless the canvas has since moved on.
func (s *FlowService) generate(ctx context.Context, session, screenID string) {
	if !s.running.TryLock(screenID) {
		return
	}
	defer s.running.Unlock(screenID)

	s.mu.Lock()
	req := s.req
	s.mu.Unlock()

	screen, ok := s.engine.Screen(screenID)
	if !ok {
		return
	}

	html, err := s.gen.GenerateScreenHTML(ctx, req, screen)

	// A "new flow" may have reset the registry while the request was
	// in flight; a stale token means this response belongs to a
	// discarded canvas and must not touch the current one.
	s.mu.Lock()
	stale := s.session != session
	s.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		if s.engine.UpdateScreenStatus(screenID, domain.StatusError, "") {
			s.emitter.Emit(ctx, EventScreenUpdated, map[string]any{"id": screenID, "status": domain.StatusError})
			s.emitter.Emit(ctx, EventGenerationError, map[string]any{"id": screenID, "error": err.Error()})
		}
		return
	}
	if s.engine.UpdateScreenStatus(screenID, domain.StatusCompleted, html) {
		s.emitter.Emit(ctx, EventScreenUpdated, map[string]any{"id": screenID, "status": domain.StatusCompleted})
	}
}

// NewFlow discards the canvas and starts over. Late generation
// responses for the old flow are invalidated by the token bump.
func (s *FlowService) NewFlow(ctx context.Context) {
	s.mu.Lock()
	s.session = uuid.New().String()
	s.req = domain.FlowRequest{}
	s.appName = ""
	s.appDesc = ""
	s.insights = nil
	s.research = map[generator.ResearchKind]*generator.ResearchResult{}
	s.mu.Unlock()

	s.engine.Reset()
	s.emitter.Emit(ctx, EventCanvasUpdated, s.engine.Snapshot())
}

// MagicEdit asks the generator to rewrite a marked element.
func (s *FlowService) MagicEdit(ctx context.Context, originalHTML, request string) (string, error) {
	if request == "" {
		return "", fmt.Errorf("empty edit request")
	}
	s.mu.Lock()
	style := s.req.Style
	s.mu.Unlock()
	return s.gen.MagicEdit(ctx, style, originalHTML, request)
}

// Analyze produces co-pilot insights for the current flow, cached until
// the next flow.
func (s *FlowService) Analyze(ctx context.Context) ([]generator.Insight, error) {
	s.mu.Lock()
	if s.insights != nil {
		cached := s.insights
		s.mu.Unlock()
		return cached, nil
	}
	req := s.req
	s.mu.Unlock()

	screens := s.engine.Screens()
	if len(screens) == 0 {
		return nil, fmt.Errorf("no screens to analyze")
	}

	insights, err := s.gen.AnalyzeFlow(ctx, req, screens)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.insights = insights
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventAnalysisReady, insights)
	return insights, nil
}

// Research runs user or competitor research, cached per kind. A failed
// fetch is cached as a user-visible failure message rather than
// surfacing an error, matching the one-shot nature of the call.
func (s *FlowService) Research(ctx context.Context, kind generator.ResearchKind) *generator.ResearchResult {
	s.mu.Lock()
	if cached, ok := s.research[kind]; ok {
		s.mu.Unlock()
		return cached
	}
	req := s.req
	s.mu.Unlock()

	result, err := s.gen.ResearchFlow(ctx, kind, req)
	if err != nil {
		result = &generator.ResearchResult{
			Content:   "Failed to fetch research data. Please try again.",
			Citations: []string{},
		}
	}

	s.mu.Lock()
	s.research[kind] = result
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventResearchReady, map[string]any{"kind": kind, "result": result})
	return result
}

// Session returns the current flow's session token.
func (s *FlowService) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Request returns the request that produced the current flow.
func (s *FlowService) Request() domain.FlowRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req
}

// AppInfo returns the generated flow's name and description.
func (s *FlowService) AppInfo() (name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appName, s.appDesc
}

// WaitRunning blocks until in-flight generation requests finish or ctx
// is cancelled. Used for graceful shutdown.
func (s *FlowService) WaitRunning(ctx context.Context) {
	s.running.WaitAll(ctx)
}
