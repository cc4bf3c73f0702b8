package remote

import "encoding/json"

// Routes served by NewHandler
const (
	PathPut    = "/put"
	PathGet    = "/get"
	PathSize   = "/size"
	PathHealth = "/healthz"
)

// maxBodyBytes bounds a single put request
const maxBodyBytes = 4 << 20

type putRequest struct {
	Item json.RawMessage `json:"item"`
}

type putResponse struct {
	OK bool `json:"ok"`
}

type getResponse struct {
	OK   bool            `json:"ok"`
	Item json.RawMessage `json:"item"`
}

type sizeResponse struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

type errorResponse struct {
	Error string `json:"error"`
}
