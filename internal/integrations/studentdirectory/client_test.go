package studentdirectory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetStudent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/libraries/3/students/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"library_id":3,"name":"Asha","is_new_user":false,"used_offer_ids":[5,9]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	student, err := client.GetStudent(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, "Asha", student.Name)
	assert.False(t, student.IsNewUser)
	assert.Equal(t, []int64{5, 9}, student.UsedOfferIDs)
}

func TestClient_GetStudentErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantErr: ErrStudentNotFound},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusBadGateway, body: `oops`, wantErr: ErrInvalidResponse},
		{name: "broken body", status: http.StatusOK, body: `{"id":`, wantErr: ErrInvalidResponse},
		{name: "foreign student", status: http.StatusOK, body: `{"id":7}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, time.Second, nopLogger{})
			_, err := client.GetStudent(context.Background(), 3, 42)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})
	_, err := client.GetStudent(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrInternal)
}
