package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
)

const indexTimeout = 3 * time.Second

// UserIndexer mirrors user profiles into an Elasticsearch index for the
// back-office user directory. Credentials never leave Mongo.
type UserIndexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndexer(es *elasticsearch.Client, index string) *UserIndexer {
	return &UserIndexer{ES: es, Index: index}
}

type userDoc struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Provider       string `json:"provider"`
	Role           string `json:"role"`
	KYCStatus      string `json:"kyc_status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func (ix *UserIndexer) IndexUser(ctx context.Context, u *entity.User) error {
	if ix == nil || ix.ES == nil || ix.Index == "" {
		return nil
	}
	b, err := json.Marshal(userDoc{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		Provider:       string(u.Provider),
		Role:           string(u.Role),
		KYCStatus:      string(u.KYCStatus),
		CreatedAt:      u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: ix.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}
