package service

import (
	"time"

	"wiregen/pkg/types"
)

// Status builds a status response for /status.
func (s *Service) Status() types.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := types.StatusResponse{
		State:          "unavailable",
		DefaultModel:   s.defaultModel,
		Inflight:       len(s.genCh),
		QueueLen:       len(s.queueCh),
		MaxConcurrent:  cap(s.genCh),
		MaxQueueDepth:  cap(s.queueCh),
		RequestsTotal:  s.requests,
		SucceededTotal: s.succeeded,
		FailedTotal:    s.failed,
		RejectedTotal:  s.rejected,
		LastError:      s.lastErr,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if s.gen != nil {
		resp.State = "ready"
		resp.Provider = s.gen.Name()
	}
	return resp
}
