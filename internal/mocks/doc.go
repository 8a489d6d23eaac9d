// Package mocks provides shared mock implementations for testing.
//
// Mocks expose a function field per interface method so each test can
// override only the behaviour it cares about:
//
//	ms := &mocks.MockTaskStore{
//	    CreateFn: func(ctx context.Context, input domain.TaskInput) (int64, error) {
//	        return 42, nil
//	    },
//	}
//
// Unset fields fall back to an empty, successful result.
package mocks
