package fetch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchAndEmbedSuccess(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer srv.Close()

	img, err := NewFetcher().FetchAndEmbed(srv.URL)
	if err != nil {
		t.Fatalf("FetchAndEmbed error: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("ContentType = %q", img.ContentType)
	}
	if string(img.Data) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestFetchAndEmbedDefaultsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 刻意不设置 Content-Type，Go 会嗅探；用畸形头覆盖。
		w.Header().Set("Content-Type", "not a valid;;; type")
		w.Write([]byte("xx"))
	}))
	defer srv.Close()

	img, err := NewFetcher().FetchAndEmbed(srv.URL)
	if err != nil {
		t.Fatalf("FetchAndEmbed error: %v", err)
	}
	if img.ContentType != "image/jpeg" {
		t.Fatalf("畸形 Content-Type 应回退为 image/jpeg，得到 %q", img.ContentType)
	}
}

func TestFetchAndEmbedNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewFetcher().FetchAndEmbed(srv.URL); err == nil {
		t.Fatalf("404 应当视为抓取失败")
	}
}

func TestFetchAndEmbedTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关闭，强制连接错误

	if _, err := NewFetcher().FetchAndEmbed(srv.URL); err == nil {
		t.Fatalf("连接失败应当返回错误")
	}
}

func TestFetchAndEmbedEmptyURL(t *testing.T) {
	if _, err := NewFetcher().FetchAndEmbed(""); err == nil {
		t.Fatalf("空 URL 应当失败")
	}
}

func TestDataURI(t *testing.T) {
	img := &EmbeddedImage{ContentType: "image/png", Data: []byte{1, 2, 3}}
	uri := img.DataURI()
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("DataURI 前缀错误: %q", uri)
	}
}
