// Package mocks provides shared test doubles for the service and auth
// interfaces.
//
// Most mocks use function fields: a test sets only the functions it cares
// about and every other method returns the mock's default values.
//
//	jwtService := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
//
// TestifyMockUserService is built on testify's mock.Mock for tests that
// assert on call expectations.
package mocks
