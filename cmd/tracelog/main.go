package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tracelog/pkg/config"
	"tracelog/pkg/fault"
	"tracelog/pkg/sink"
	"tracelog/pkg/trace"
)

func main() {
	log.Println("Initializing tracelog demo...")

	// 1. Config
	cfg := config.DefaultConfig()
	cfg.Trace.Level = "verbose"

	// 2. Source + listeners
	source := trace.NewSource(cfg.Trace.SourceName, trace.ParseSeverity(cfg.Trace.Level))
	if err := source.Register("console", sink.NewConsole()); err != nil {
		log.Fatalf("Failed to register console listener: %v", err)
	}
	if cfg.Redis.Address != "" {
		rl := sink.NewRedis(sink.RedisOptions{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err := source.Register("redis", rl); err != nil {
			log.Fatalf("Failed to register redis listener: %v", err)
		}
	}
	if cfg.HTTP.CollectorURL != "" {
		if err := source.Register("http", sink.NewHTTP(cfg.HTTP.CollectorURL, cfg.HTTP.Headers)); err != nil {
			log.Fatalf("Failed to register http listener: %v", err)
		}
	}
	defer func() {
		if err := source.CloseListeners(); err != nil {
			log.Printf("Listener close: %v", err)
		}
	}()

	// 3. Logger
	logger := trace.NewLogger(source)
	logger.EnableRetention(cfg.Trace.RetentionEnabled)
	logger.SetRetentionWindow(cfg.Trace.RetentionWindow)

	// 4. Plain traffic and a retry sequence
	_ = logger.Log("connection pool warmed")
	_ = logger.LogRetry(0, "WhoAmI", 0, false, false, "request")
	_ = logger.LogRetry(2, "WhoAmI", 2*time.Second, false, true, "request")
	_ = logger.LogRetry(2, "WhoAmI", 0, true, false, "request")

	// 5. A nested failure chain: operation wrapping a service fault chain
	chain := &fault.OperationFault{
		Message:    "Create account failed",
		Source:     "AccountClient",
		ResultCode: -2147204784,
		Data:       map[string]string{"request_id": uuid.NewString()},
		Inner: &fault.ServiceFault{
			Message:    "The record could not be saved",
			ErrorCode:  -2147204784,
			TraceText:  "at Plugin.Execute()",
			ActivityID: uuid.New(),
			Details:    map[string]string{"plugin": "AccountPreCreate"},
			Timestamp:  time.Now().UTC(),
			Inner: &fault.ServiceFault{
				Message: "Duplicate key violation",
			},
		},
	}
	_ = logger.LogFailure(trace.FailureReport{
		RequestName: "CreateAccount",
		TrackingID:  uuid.NewString(),
		SessionID:   uuid.NewString(),
		LockWait:    12 * time.Millisecond,
		Elapsed:     431 * time.Millisecond,
		Fault:       chain,
		Context:     "account sync",
		Terminal:    true,
	})

	// 6. A transport fault with a structured JSON error body
	tf := &fault.TransportFault{
		StatusCode: http.StatusServiceUnavailable,
		Body: []byte(`{"error":{"message":"Service busy\nplease retry later",` +
			`"innererror":{"message":"throttle limit exceeded"}}}`),
	}
	_ = logger.LogRequestFault("WhoAmI", tf, "initial connect", "request")

	// 7. Post-hoc inspection
	fmt.Println("---- last error ----")
	fmt.Println(logger.LastError())

	fmt.Println("---- retained lines ----")
	for _, rec := range logger.CachedRecords() {
		fmt.Printf("%s %s\n", rec.Time.Format(time.RFC3339), rec.Line)
	}
}
