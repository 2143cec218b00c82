package ocr

import (
	"context"
	"errors"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
)

// annotateClient is the slice of the Vision API client the extractor needs.
type annotateClient interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// Extractor runs Google Vision text detection over receipt images.
type Extractor struct {
	cfg *config.Config
	log zerolog.Logger

	// newClient is swapped out in tests.
	newClient func(ctx context.Context) (annotateClient, error)
}

// NewExtractor creates an Extractor. The Vision client is dialed per call so
// a missing credential surfaces as an extraction failure, not a startup one.
func NewExtractor(cfg *config.Config, log zerolog.Logger) *Extractor {
	e := &Extractor{cfg: cfg, log: log}
	e.newClient = e.dialVision
	return e
}

func (e *Extractor) dialVision(ctx context.Context) (annotateClient, error) {
	cred, err := ResolveCredential(e.cfg)
	if err != nil {
		return nil, err
	}
	switch cred.(type) {
	case FileCredential:
		e.log.Debug().Str("credential", "file").Msg("using service account key file")
	case FieldCredential:
		e.log.Debug().Str("credential", "fields").Msg("using service account fields from environment")
	}
	client, err := vision.NewImageAnnotatorClient(ctx, cred.ClientOption())
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return client, nil
}

// ExtractText runs TEXT_DETECTION on the image and returns the aggregate
// text block. An image in which Vision finds no text at all yields an empty
// string with a nil error; the caller decides what absence means.
func (e *Extractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	client, err := e.newClient(ctx)
	if err != nil {
		if errors.Is(err, ErrCredentialsMissing) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	defer client.Close()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION}},
			},
		},
	}

	resp, err := client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	responses := resp.GetResponses()
	if len(responses) == 0 {
		return "", fmt.Errorf("%w: empty batch response", ErrExtractFailed)
	}

	annotated := responses[0]
	if annotated.GetError() != nil {
		return "", fmt.Errorf("%w: %s", ErrServiceError, annotated.GetError().GetMessage())
	}

	annotations := annotated.GetTextAnnotations()
	if len(annotations) == 0 {
		e.log.Debug().Msg("vision found no text in the image")
		return "", nil
	}

	text := annotations[0].GetDescription()
	e.log.Debug().
		Int("annotations", len(annotations)).
		Int("text_length", len(text)).
		Msg("text detection complete")
	return text, nil
}
