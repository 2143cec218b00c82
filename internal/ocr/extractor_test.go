package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/status"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
)

type fakeAnnotateClient struct {
	resp   *visionpb.BatchAnnotateImagesResponse
	err    error
	gotReq *visionpb.BatchAnnotateImagesRequest
	closed bool
}

func (f *fakeAnnotateClient) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error) {
	f.gotReq = req
	return f.resp, f.err
}

func (f *fakeAnnotateClient) Close() error {
	f.closed = true
	return nil
}

func newTestExtractor(client annotateClient) *Extractor {
	e := NewExtractor(&config.Config{}, zerolog.Nop())
	e.newClient = func(ctx context.Context) (annotateClient, error) {
		return client, nil
	}
	return e
}

func textResponse(text string) *visionpb.BatchAnnotateImagesResponse {
	return &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{
			{
				TextAnnotations: []*visionpb.EntityAnnotation{
					{Description: text},
					{Description: "TOTAL"},
				},
			},
		},
	}
}

func TestExtractText_ReturnsAggregateText(t *testing.T) {
	client := &fakeAnnotateClient{resp: textResponse("CAFE MOCHA\nTOTAL 12.50")}
	e := newTestExtractor(client)

	text, err := e.ExtractText(context.Background(), []byte("image-bytes"))
	if err != nil {
		t.Fatalf("Expected text, got error: %v", err)
	}
	if text != "CAFE MOCHA\nTOTAL 12.50" {
		t.Errorf("Expected first annotation description, got %q", text)
	}

	if !client.closed {
		t.Error("Expected vision client to be closed")
	}
	reqs := client.gotReq.GetRequests()
	if len(reqs) != 1 {
		t.Fatalf("Expected one annotate request, got %d", len(reqs))
	}
	if got := string(reqs[0].GetImage().GetContent()); got != "image-bytes" {
		t.Errorf("Expected image bytes to be forwarded, got %q", got)
	}
	features := reqs[0].GetFeatures()
	if len(features) != 1 || features[0].GetType() != visionpb.Feature_TEXT_DETECTION {
		t.Errorf("Expected a single TEXT_DETECTION feature, got %v", features)
	}
}

func TestExtractText_NoTextAnnotations(t *testing.T) {
	client := &fakeAnnotateClient{
		resp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{{}},
		},
	}
	e := newTestExtractor(client)

	text, err := e.ExtractText(context.Background(), []byte("blank"))
	if err != nil {
		t.Fatalf("Expected no error for a textless image, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}

func TestExtractText_ServiceError(t *testing.T) {
	client := &fakeAnnotateClient{
		resp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{
				{Error: &status.Status{Code: 3, Message: "image too large"}},
			},
		},
	}
	e := newTestExtractor(client)

	_, err := e.ExtractText(context.Background(), []byte("huge"))
	if !errors.Is(err, ErrServiceError) {
		t.Fatalf("Expected ErrServiceError, got %v", err)
	}
	if !strings.Contains(err.Error(), "image too large") {
		t.Errorf("Expected service message in error, got %q", err.Error())
	}
	if !client.closed {
		t.Error("Expected vision client to be closed")
	}
}

func TestExtractText_RequestFailure(t *testing.T) {
	client := &fakeAnnotateClient{err: errors.New("rpc unavailable")}
	e := newTestExtractor(client)

	_, err := e.ExtractText(context.Background(), []byte("img"))
	if !errors.Is(err, ErrExtractFailed) {
		t.Fatalf("Expected ErrExtractFailed, got %v", err)
	}
	if errors.Is(err, ErrServiceError) {
		t.Error("Expected request failure to stay distinct from a service error")
	}
}

func TestExtractText_EmptyBatchResponse(t *testing.T) {
	client := &fakeAnnotateClient{resp: &visionpb.BatchAnnotateImagesResponse{}}
	e := newTestExtractor(client)

	_, err := e.ExtractText(context.Background(), []byte("img"))
	if !errors.Is(err, ErrExtractFailed) {
		t.Errorf("Expected ErrExtractFailed, got %v", err)
	}
}

func TestExtractText_CredentialsMissing(t *testing.T) {
	e := NewExtractor(&config.Config{}, zerolog.Nop())

	_, err := e.ExtractText(context.Background(), []byte("img"))
	if !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("Expected ErrCredentialsMissing, got %v", err)
	}
	if errors.Is(err, ErrExtractFailed) {
		t.Error("Expected missing credentials to stay distinct from an extraction failure")
	}
}
