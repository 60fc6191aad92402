package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFollowerLookupPrimarySuccess(t *testing.T) {
	var pageHits int
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/web_profile_info/", r.URL.Path)
		assert.Equal(t, "ayse.demir", r.URL.Query().Get("username"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Contains(t, r.Header.Get("Referer"), "/ayse.demir/")
		fmt.Fprint(w, `{"data":{"user":{"edge_followed_by":{"count":251432}}}}`)
	}))
	defer api.Close()
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHits++
	}))
	defer page.Close()

	svc := NewFollowerLookupService(api.URL, page.URL, zap.NewNop())
	res := svc.Lookup(context.Background(), "ayse.demir")

	assert.Equal(t, "ayse.demir", res.Username)
	assert.Equal(t, "251432", res.Followers)
	assert.Equal(t, 0, pageHits)
}

func TestFollowerLookupFallbackOnPrimaryError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer api.Close()
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><script>{"edge_followed_by": {"count": 98765}}</script></html>`)
	}))
	defer page.Close()

	svc := NewFollowerLookupService(api.URL, page.URL, zap.NewNop())
	res := svc.Lookup(context.Background(), "someuser")

	assert.Equal(t, "98765", res.Followers)
}

// 主路径是合法响应但没有用户对象时直接返回 NOT_FOUND，不触发兜底抓取
func TestFollowerLookupNoUserSkipsFallback(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"user":null}}`)
	}))
	defer api.Close()
	var pageHits int
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHits++
		fmt.Fprint(w, `{"edge_followed_by": {"count": 1}}`)
	}))
	defer page.Close()

	svc := NewFollowerLookupService(api.URL, page.URL, zap.NewNop())
	res := svc.Lookup(context.Background(), "ghost")

	assert.Equal(t, FollowerNotFound, res.Followers)
	assert.Equal(t, 0, pageHits)
}

func TestFollowerLookupBothPathsFail(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>no counts here</html>`)
	}))
	defer page.Close()

	svc := NewFollowerLookupService(api.URL, page.URL, zap.NewNop())
	res := svc.Lookup(context.Background(), "whoever")

	assert.Equal(t, FollowerNotFound, res.Followers)
}

func TestFollowerLookupEmptyUsername(t *testing.T) {
	svc := NewFollowerLookupService("http://127.0.0.1:1", "http://127.0.0.1:1", zap.NewNop())
	res := svc.Lookup(context.Background(), "")
	assert.Equal(t, FollowerNotFound, res.Followers)
}

func TestFollowerLookupFallbackPrimaryUnreachable(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"edge_followed_by": {"count": 42}`)
	}))
	defer page.Close()

	// 主路径地址不可达，应退到页面抓取
	svc := NewFollowerLookupService("http://127.0.0.1:1", page.URL, zap.NewNop())
	res := svc.Lookup(context.Background(), "tinyaccount")

	assert.Equal(t, "42", res.Followers)
}
