package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	req := require.New(t)

	for raw, expected := range map[string]Category{
		"patient":  CategoryPatient,
		"user":     CategoryPatient,
		"Provider": CategoryProvider,
		" doctor ": CategoryProvider,
	} {
		category, err := ParseCategory(raw)
		req.NoError(err, raw)
		req.Equal(expected, category, raw)
	}

	_, err := ParseCategory("nurse")
	req.Error(err)
}

func TestAccount_Json_Uses_Category_Name(t *testing.T) {
	req := require.New(t)

	data, err := json.Marshal(NewProvider("doc"))
	req.NoError(err)
	req.JSONEq(`{"id":"doc","category":"provider"}`, string(data))

	var account Account
	req.NoError(json.Unmarshal([]byte(`{"id":"p1","category":"user"}`), &account))
	req.Equal(NewPatient("p1"), account)

	req.Error(json.Unmarshal([]byte(`{"id":"p1","category":"nurse"}`), &account))
}
