package errorspkg

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	errNotFound := errors.New("not found")
	errConflict := errors.New("conflict")

	statuses := StatusMap{
		errNotFound: http.StatusNotFound,
		errConflict: http.StatusConflict,
	}

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantErr    error
	}{
		{name: "Sentinel", err: errConflict, wantStatus: http.StatusConflict, wantErr: errConflict},
		{name: "Wrapped", err: fmt.Errorf("%w: CPT-00001", errNotFound), wantStatus: http.StatusNotFound, wantErr: errNotFound},
		{name: "Unknown", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantErr: ErrInternal},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, err := statuses.Resolve(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestResolveKeepsMessage(t *testing.T) {
	t.Parallel()

	errNotFound := errors.New("account not found")
	wrapped := fmt.Errorf("%w: CPT-00009", errNotFound)

	_, err := StatusMap{errNotFound: http.StatusNotFound}.Resolve(wrapped)
	require.EqualError(t, err, "account not found: CPT-00009")
}
