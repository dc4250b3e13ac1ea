package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	data, err := exporter.Render(Dataset{
		Headers: []string{"email", "message"},
		Rows: []map[string]string{
			{"email": "ada@example.com", "message": "line one\nline two"},
			{"email": "grace@example.com"},
		},
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "email,message")
	assert.Contains(t, out, `"line one`)
	assert.Contains(t, out, "grace@example.com,")
}

func TestCSVExporterRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVExporterWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	path, err := NewCSVExporter().WriteFile(dir, "sms requests.csv", Dataset{
		Headers: []string{"phone_number", "message"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sms_requests.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "phone_number,message\n", string(data))
}

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.csv", "report.csv"},
		{"sms requests.csv", "sms_requests.csv"},
		{"a/b\\c:d.csv", "a_-_b_-_c_-_d.csv"},
		{"  padded  .csv", "padded_.csv"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SafeFilename(tc.in), "in %q", tc.in)
	}
}
