package holds

import (
	"context"
	"log"
	"time"

	"movibus/internal/stream"
)

// SweepProcessor expires stale holds on a fixed interval. The interval must
// stay shorter than the hold duration so a hold never outlives its expiry
// by more than one tick.
type SweepProcessor struct {
	service  Service
	config   *SweepConfig
	producer stream.Producer
	done     chan struct{}
}

type SweepConfig struct {
	Interval time.Duration
}

func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Interval: 1 * time.Minute,
	}
}

func NewSweepProcessor(service Service, config *SweepConfig, producer stream.Producer) *SweepProcessor {
	if config == nil {
		config = DefaultSweepConfig()
	}

	return &SweepProcessor{
		service:  service,
		config:   config,
		producer: producer,
		done:     make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (sp *SweepProcessor) Start(ctx context.Context) {
	log.Println("Starting seat hold sweeper...")
	go sp.run(ctx)
}

// Stop stops the background sweep loop
func (sp *SweepProcessor) Stop() {
	log.Println("Stopping seat hold sweeper...")
	close(sp.done)
}

func (sp *SweepProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(sp.config.Interval)
	defer ticker.Stop()

	log.Printf("Started seat hold sweeper with %v interval", sp.config.Interval)

	for {
		select {
		case <-ticker.C:
			sp.sweep(ctx)
		case <-sp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (sp *SweepProcessor) sweep(ctx context.Context) {
	expired, err := sp.service.SweepExpired(ctx, time.Now())
	if err != nil {
		log.Printf("Error sweeping expired holds: %v", err)
		return
	}

	if expired > 0 {
		log.Printf("Expired %d seat holds", expired)
		if sp.producer != nil {
			event := &stream.Event{
				Type:  stream.EventHoldsExpired,
				Count: int(expired),
			}
			if err := sp.producer.Publish(ctx, event); err != nil {
				log.Printf("Error publishing hold expiry event: %v", err)
			}
		}
	}
}
