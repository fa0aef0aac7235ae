package skydb

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry"
	"github.com/skynetlabs/go-skydb/pkg/skydb/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

// EnvelopeVersion is the version number stamped into the JSON envelope
// wrapped around every document written by SetJSON. It is unrelated to
// the encrypted file format version.
const EnvelopeVersion = 2

// jsonEnvelope is the wire wrapper distinguishing current-format
// documents from legacy unwrapped ones
type jsonEnvelope struct {
	Data    interface{} `json:"_data"`
	Version int         `json:"_v"`
}

// envelopeProbe is the decode side of the tagged union: an object with
// neither field present is a legacy unwrapped payload
type envelopeProbe struct {
	Data    *json.RawMessage `json:"_data"`
	Version *int             `json:"_v"`
}

// JSONResponse is the result of a GetJSON call
type JSONResponse struct {
	// Data is the stored document, nil when no data exists. When
	// Cached is set, Data is omitted even though data exists.
	Data map[string]interface{}

	// DataLink is the content address the registry entry references,
	// zero when no data exists
	DataLink skylink.Skylink

	// Cached reports that the caller-supplied data link is still
	// current, so the download was skipped
	Cached bool
}

// GetJSON fetches the current JSON document stored under the owner's
// data key. Absent and deleted entries both yield a zero response with
// no error.
func (db *DB) GetJSON(ctx context.Context, owner registry.PublicKey, dataKey string, opts ...CallOption) (JSONResponse, error) {
	o := db.mergeCallOptions(opts)

	link, found, err := db.resolveDataLink(ctx, owner, dataKey)
	if err != nil || !found {
		return JSONResponse{}, err
	}

	if o.CachedDataLink != nil && *o.CachedDataLink == link {
		db.l.Debug("data link unchanged, skipping download",
			zap.String("data_key", dataKey),
			zap.String("skylink", link.String()),
		)
		return JSONResponse{DataLink: link, Cached: true}, nil
	}

	raw, err := db.downloader.FileContent(ctx, link, DownloadOptions{})
	if err != nil {
		return JSONResponse{}, errors.Newf("skydb: download %s", link).Wrap(err)
	}

	data, err := unwrapJSON(raw)
	if err != nil {
		return JSONResponse{}, errors.Newf("skydb: decode content of %q", dataKey).Wrap(err)
	}
	return JSONResponse{Data: data, DataLink: link}, nil
}

// SetJSON stores a JSON document under the owner's data key at the
// next revision and returns the content address it was uploaded to
func (db *DB) SetJSON(ctx context.Context, sk registry.PrivateKey, dataKey string, data interface{}, opts ...CallOption) (skylink.Skylink, error) {
	o := db.mergeCallOptions(opts)

	// synchronous validation, before any I/O
	if err := sk.Validate(); err != nil {
		return skylink.Empty, err
	}
	if dataKey == "" {
		return skylink.Empty, errors.New("skydb: data key must not be empty").Wrap(status.ErrValidation)
	}
	owner := sk.PublicKey()

	revision, err := db.cache.reserve(owner, dataKey)
	if err != nil {
		return skylink.Empty, err
	}

	link, err := db.uploadEnvelope(ctx, dataKey, data, o)
	if err != nil {
		db.cache.rollback(owner, dataKey)
		return skylink.Empty, err
	}

	entry := registry.NewEntry(dataKey, link, revision)
	if err := db.registry.SetEntry(ctx, sk, entry); err != nil {
		db.cache.rollback(owner, dataKey)
		return skylink.Empty, errors.Newf("skydb: set entry %q", dataKey).Wrap(err)
	}

	db.l.Debug("stored JSON document",
		zap.String("data_key", dataKey),
		zap.Uint64("revision", revision),
		zap.String("skylink", link.String()),
	)
	return link, nil
}

// uploadEnvelope wraps data in the versioned envelope, uploads it and
// validates the returned content address
func (db *DB) uploadEnvelope(ctx context.Context, dataKey string, data interface{}, o CallOptions) (skylink.Skylink, error) {
	buf, err := json.Marshal(jsonEnvelope{Data: data, Version: EnvelopeVersion})
	if err != nil {
		return skylink.Empty, errors.Newf("skydb: marshal payload for %q", dataKey).Wrap(status.ErrValidation.Wrap(err))
	}

	fileName := o.FileName
	if fileName == "" {
		fileName = dataKey + ".json"
	}
	result, err := db.uploader.Upload(ctx, bytes.NewReader(buf), UploadOptions{FileName: fileName})
	if err != nil {
		return skylink.Empty, errors.Newf("skydb: upload payload for %q", dataKey).Wrap(err)
	}
	if err := result.Validate(); err != nil {
		return skylink.Empty, err
	}
	return result.Skylink, nil
}

// unwrapJSON decodes a downloaded document: the body must be a JSON
// object; enveloped payloads are unwrapped, objects with neither
// envelope field are legacy payloads returned as-is.
func unwrapJSON(raw []byte) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, status.ErrNotObject.Wrap(err)
	}
	if body == nil {
		return nil, status.ErrNotObject.WrapMessage("body is null")
	}

	var probe envelopeProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, status.ErrNotObject.Wrap(err)
	}
	if probe.Data == nil && probe.Version == nil {
		// legacy unwrapped payload
		return body, nil
	}
	if probe.Data == nil {
		return nil, status.ErrEnvelopeMissingPayload.WrapMessage("envelope version %d", *probe.Version)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(*probe.Data, &payload); err != nil {
		return nil, status.ErrNotObject.WrapMessage("enveloped payload: %v", err)
	}
	return payload, nil
}
