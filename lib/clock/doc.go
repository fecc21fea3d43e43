// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the time source used for process deadlines.
//
// The process runner arms one timer per invocation and kills the child
// when it fires. Production code uses Real(); tests use Fake() so that
// a timeout can be triggered deterministically without sleeping:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	runner := process.NewRunner(process.Options{Clock: fake})
//	go func() { result <- runner.Execute(ctx, command, time.Minute) }()
//	fake.WaitForTimers(1)      // the runner armed its deadline
//	fake.Advance(time.Minute)  // the deadline fires, the child is killed
package clock
