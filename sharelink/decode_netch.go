package sharelink

import (
	"encoding/json"
	"strings"

	"github.com/e1732a364fed/sharelink/server"
)

const netchPrefix = "Netch://"

// Netch://base64(json(server.Record))
func decodeNetch(line string, _ func(error)) ([]server.Server, error) {
	body, err := decodeBase64(strings.TrimPrefix(line, netchPrefix))
	if err != nil {
		return nil, err
	}

	var r server.Record
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, malformed("invalid netch json", err.Error())
	}

	if r.Hostname == "" {
		return nil, malformed("netch record has no hostname", nil)
	}
	if !server.ValidPort(r.Port) {
		return nil, malformed("netch record port out of range", r.Port)
	}

	s, err := server.FromRecord(r)
	if err != nil {
		return nil, malformed("netch record has unknown type", string(r.Type))
	}

	s, err = Validate(s)
	if err != nil {
		return nil, err
	}
	return []server.Server{s}, nil
}
