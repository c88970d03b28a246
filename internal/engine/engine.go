// Package engine is the in-process entry point to the assistant: intent
// classification, advice, simulations and the composed Respond pipeline.
package engine

import (
	"context"
	"time"

	"finlight-engine/internal/advice"
	apperrors "finlight-engine/internal/common/errors"
	"finlight-engine/internal/common/logger"
	"finlight-engine/internal/common/metrics"
	"finlight-engine/internal/culture"
	"finlight-engine/internal/genai"
	"finlight-engine/internal/intent"
	"finlight-engine/internal/models"
	"finlight-engine/internal/profile"
	"finlight-engine/internal/simulation"
)

// ProfileProvider loads a user's financial context. profile.Store
// implements it.
type ProfileProvider = profile.Provider

type Options struct {
	Tables   *culture.Tables
	Detector intent.LanguageDetector
	Profiles ProfileProvider
	// Generator is optional; nil keeps every answer rule-based.
	Generator         genai.Generator
	GenerativeTimeout time.Duration
	Logger            logger.Logger
}

// Engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	classifier *intent.Classifier
	advisor    *advice.Generator
	simulator  *simulation.Simulator
	profiles   ProfileProvider
	generator  genai.Generator
	timeout    time.Duration
	logger     logger.Logger
}

func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Engine{
		classifier: intent.NewClassifier(opts.Detector, log),
		advisor:    advice.NewGenerator(opts.Tables),
		simulator:  simulation.NewSimulator(log),
		profiles:   opts.Profiles,
		generator:  opts.Generator,
		timeout:    opts.GenerativeTimeout,
		logger:     log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// ClassifyIntent never fails.
func (e *Engine) ClassifyIntent(query, language string) models.Intent {
	in := e.classifier.Classify(query, language)
	metrics.IntentClassifications.WithLabelValues(string(in.Name)).Inc()
	e.logger.Debug("Intent classified", map[string]interface{}{
		"intent":     in.Name,
		"confidence": in.Confidence,
		"language":   in.Language,
	})
	return in
}

type AdviceRequest struct {
	Intent  models.Intent
	Context *models.UserFinancialContext
	// Query drives sub-topic routing within an intent.
	Query string
	Now   time.Time
}

// GenerateAdvice returns INVALID_INPUT for an out-of-domain context. A
// missing profile is not an error; the response asks for it instead.
func (e *Engine) GenerateAdvice(ctx context.Context, req AdviceRequest) (models.AdviceResponse, error) {
	if err := req.Context.Validate(); err != nil {
		return models.AdviceResponse{}, err
	}

	resp := e.advisor.Generate(advice.Request{
		Intent:   req.Intent,
		Context:  req.Context,
		Query:    req.Query,
		Language: req.Intent.Language,
		Now:      req.Now,
	})

	if req.Intent.Name == models.IntentOther && e.generator != nil {
		resp = e.enhance(ctx, req, resp)
	}

	metrics.AdviceResponses.WithLabelValues(string(req.Intent.Name), resp.Source).Inc()
	return resp, nil
}

// enhance swaps in generated text, keeping the rule-based suggestions. Any
// failure leaves the rule-based response untouched.
func (e *Engine) enhance(ctx context.Context, req AdviceRequest, rules models.AdviceResponse) models.AdviceResponse {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	prompt := genai.BuildPrompt(promptContext(req))
	text, err := e.generator.Generate(ctx, prompt)
	if err == nil && text == "" {
		err = genai.ErrEmptyResponse
	}
	if err != nil {
		metrics.GenerativeFallbackFailures.WithLabelValues(e.generator.Name()).Inc()
		e.logger.Warn("Generative enhancement failed, using rule-based answer", map[string]interface{}{
			"provider": e.generator.Name(),
			"error":    apperrors.NewExternalServiceFailureError(e.generator.Name(), err).Error(),
		})
		return rules
	}

	enhanced := rules
	enhanced.Text = text
	enhanced.Source = models.SourceGenerative
	return enhanced
}

func promptContext(req AdviceRequest) genai.Context {
	pc := genai.Context{Language: req.Intent.Language, Query: req.Query}
	if c := req.Context; c != nil {
		pc.Name = c.FullName
		pc.State = c.State
		pc.MonthlyIncome = c.MonthlyIncome
		pc.MonthlyExpenses = c.MonthlyExpenses
	}
	return pc
}

// RunSimulation returns UNKNOWN_SIMULATION_TYPE or INVALID_INPUT as typed
// errors. now is only read by date-sensitive simulations.
func (e *Engine) RunSimulation(simulationType string, inputs map[string]interface{}, userCtx *models.UserFinancialContext, now time.Time) (simulation.Result, error) {
	if err := userCtx.Validate(); err != nil {
		return nil, err
	}
	return e.simulator.Run(simulationType, simulation.Inputs(inputs), simulation.NewEnvelope(userCtx, now))
}
