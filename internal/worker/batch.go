package worker

import (
	"context"

	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/pipeline"
)

// GarbleJob garbles one conversation under one seed.
//
// Each job builds its own pipeline, and with it its own injector and random
// generator. Seeding therefore never interleaves between concurrent jobs,
// which keeps every job individually reproducible.
type GarbleJob struct {
	Config       *model.Config
	Conversation model.Conversation
	Seed         int64
}

// Execute runs the garble job
func (j *GarbleJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &GarbleResult{Title: j.Conversation.Title, Seed: j.Seed, Error: err}
	}

	p := pipeline.NewPipeline(j.Config)
	seed := j.Seed
	report := p.GarbleConversation(j.Conversation, &seed)

	return &GarbleResult{
		Title:  j.Conversation.Title,
		Seed:   j.Seed,
		Report: report,
	}
}

// GarbleResult is the outcome of one garble job
type GarbleResult struct {
	Title  string
	Seed   int64
	Report *model.Report
	Error  error
}

// GetError returns the job error, if any
func (r *GarbleResult) GetError() error {
	return r.Error
}

// BatchProcessor garbles many conversations (or many seeded runs of one
// conversation) concurrently.
type BatchProcessor struct {
	config      *model.Config
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(cfg *model.Config, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		config:      cfg,
		concurrency: concurrency,
	}
}

// ProcessConversations garbles each conversation once, deriving the seed as
// baseSeed plus the conversation's index so every conversation gets a
// distinct but reproducible stream.
func (b *BatchProcessor) ProcessConversations(ctx context.Context, conversations []model.Conversation, baseSeed int64) []*GarbleResult {
	jobs := make([]*GarbleJob, len(conversations))
	for i, conv := range conversations {
		jobs[i] = &GarbleJob{
			Config:       b.config,
			Conversation: conv,
			Seed:         baseSeed + int64(i),
		}
	}
	return b.run(jobs)
}

// ProcessSeeds garbles one conversation once per seed. Useful for error
// severity statistics across many runs.
func (b *BatchProcessor) ProcessSeeds(ctx context.Context, conversation model.Conversation, seeds []int64) []*GarbleResult {
	jobs := make([]*GarbleJob, len(seeds))
	for i, seed := range seeds {
		jobs[i] = &GarbleJob{
			Config:       b.config,
			Conversation: conversation,
			Seed:         seed,
		}
	}
	return b.run(jobs)
}

func (b *BatchProcessor) run(jobs []*GarbleJob) []*GarbleResult {
	if len(jobs) == 0 {
		return []*GarbleResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, job := range jobs {
		pool.Submit(job)
	}

	results := pool.Wait()

	garbleResults := make([]*GarbleResult, len(results))
	for i, result := range results {
		garbleResults[i] = result.(*GarbleResult)
	}

	return garbleResults
}
