package services

import (
	"net/http"
)

type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

// BearerAuth signs requests with the provider access token and pins
// the API version header the payload shapes were written against.
type BearerAuth struct {
	apiKey     string
	apiVersion string
}

func (b *BearerAuth) GetApiKey() string {
	return b.apiKey
}

func (b *BearerAuth) SetApiKey(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+b.apiKey)
	if b.apiVersion != "" {
		request.Header.Set("Square-Version", b.apiVersion)
	}
}

func NewBearerAuth(apiKey, apiVersion string) *BearerAuth {
	if apiKey == "" {
		return nil
	}
	return &BearerAuth{apiKey: apiKey, apiVersion: apiVersion}
}
