package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func Test_GetRoutePattern(t *testing.T) {
	var gotPattern string
	router := chi.NewRouter()
	router.Get("/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotPattern = GetRoutePattern(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/customers/c-1", nil)
	router.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "/customers/{id}", gotPattern)
}

func Test_UnwrapInterfaceToPointer(t *testing.T) {
	// Test with a string
	strValue := "test"
	strValuePtr := &strValue
	i := interface{}(strValuePtr)
	unwrappedValue := UnwrapInterfaceToPointer[string](i)
	assert.Equal(t, "test", *unwrappedValue)

	// Test with a struct
	type testStruct struct {
		Name string
	}
	testStructValue := testStruct{Name: "test"}
	testStructValuePtr := &testStructValue
	i = interface{}(testStructValuePtr)
	assert.Equal(t, testStruct{Name: "test"}, *UnwrapInterfaceToPointer[testStruct](i))

	// Test with nil
	assert.Nil(t, UnwrapInterfaceToPointer[string](nil))
}

func Test_ValidatePathIsNotTraversal(t *testing.T) {
	testCases := []struct {
		path      string
		wantError bool
	}{
		{"customers.csv", false},
		{"exports/customers.csv", false},
		{"..customers.csv", false},
		{"customers...csv", false},
		{"../customers.csv", true},
		{"..\\customers.csv", true},
		{"exports/../../customers.csv", true},
		{"exports\\..\\customers.csv", true},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			err := ValidatePathIsNotTraversal(tc.path)
			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
