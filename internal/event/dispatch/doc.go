// Package dispatch delivers committed calculation records to observers.
//
// Delivery is synchronous, in registration order, on the calling
// goroutine. There is exactly one logical thread of control in the
// calculator, so no queueing or worker pool is involved.
//
// # Observer Isolation
//
// Every observer invocation runs under panic recovery. A misbehaving
// observer cannot crash the process, fail the calculation, or prevent
// later-registered observers from receiving the same record. Errors and
// panics are reported through configurable handlers and the observer
// stays registered for future events.
//
// # Usage
//
//	notifier := dispatch.NewNotifier(
//	    dispatch.WithErrorHandler(func(rec calc.Record, err error) {
//	        logger.Warn("observer failed", zap.Error(err))
//	    }),
//	    dispatch.WithPanicHandler(func(rec calc.Record, v any, stack []byte) {
//	        logger.Error("observer panic", zap.Any("panic", v))
//	    }),
//	)
//	notifier.Register(obs)
//	results := notifier.Notify(record)
//
// # Result Handling
//
// Notify returns one Result per observer with success/failure status,
// error details, execution duration, and panic information if
// applicable.
package dispatch
