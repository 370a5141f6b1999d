package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"no path keeps options", "mongodb://127.0.0.1:27017/?retryWrites=true", "mongodb://127.0.0.1:27017/mutual_funds_db?retryWrites=true"},
		{"srv without slash", "mongodb+srv://u:p@cluster0.example.net?retryWrites=true&w=majority", "mongodb+srv://u:p@cluster0.example.net/mutual_funds_db?retryWrites=true&w=majority"},
		{"bare host", "mongodb://localhost:27017", "mongodb://localhost:27017/mutual_funds_db"},
		{"seed list", "mongodb://h1:27017,h2:27017/?replicaSet=rs0", "mongodb://h1:27017,h2:27017/mutual_funds_db?replicaSet=rs0"},
		{"path replaced by resolved name", "mongodb://localhost:27017/mutual_funds_db", "mongodb://localhost:27017/mutual_funds_db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := migrationURL(tt.uri, "mutual_funds_db")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrationURL_Rejects(t *testing.T) {
	_, err := migrationURL("localhost:27017", "db")
	assert.Error(t, err)

	_, err = migrationURL("mongodb://localhost:27017", "")
	assert.Error(t, err)
}
