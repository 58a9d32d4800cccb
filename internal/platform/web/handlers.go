package web

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-drmario/internal/config"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/virus"
	"github.com/vovakirdan/tui-drmario/internal/platform/boardimage"
	"github.com/vovakirdan/tui-drmario/internal/storage"
)

// maxImportBytes bounds POST /snapshots bodies.
const maxImportBytes = 1 << 20

type snapshotSummary struct {
	ID        int64  `json:"id"`
	GameID    string `json:"gameId"`
	Label     string `json:"label,omitempty"`
	Frame     int    `json:"frame"`
	Seed      int64  `json:"seed"`
	Checksum  string `json:"checksum"`
	Timestamp int64  `json:"timestamp"`
	CreatedAt string `json:"createdAt"`
}

func summarize(r storage.SnapshotRecord) snapshotSummary {
	return snapshotSummary{
		ID:        r.ID,
		GameID:    r.GameID,
		Label:     r.Label,
		Frame:     r.Frame,
		Seed:      r.Seed,
		Checksum:  r.Checksum,
		Timestamp: r.TakenAt,
		CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func (s *Server) listSnapshots(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	records, err := s.store.RecentSnapshots(gameParam(c), limit)
	if err != nil {
		s.storeError(c, err)
		return
	}

	out := make([]snapshotSummary, 0, len(records))
	for _, r := range records {
		out = append(out, summarize(r))
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": out})
}

func (s *Server) getSnapshot(c *gin.Context) {
	id, ok := snapshotID(c)
	if !ok {
		return
	}
	rec, err := s.store.SnapshotByID(id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.Header("X-Snapshot-Checksum", rec.Checksum)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(rec.Payload))
}

func (s *Server) displaySnapshot(c *gin.Context) {
	id, ok := snapshotID(c)
	if !ok {
		return
	}
	snap, err := s.store.LoadSnapshot(id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.String(http.StatusOK, history.FormatForDisplay(snap))
}

func (s *Server) boardImage(c *gin.Context) {
	id, ok := snapshotID(c)
	if !ok {
		return
	}
	width, err := strconv.Atoi(c.DefaultQuery("width", "0"))
	if err != nil || width < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a non-negative integer"})
		return
	}

	snap, err := s.store.LoadSnapshot(id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	b, err := drmario.SnapshotBoard(s.cfg, snap)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := boardimage.WritePNG(&buf, b, boardimage.DefaultCellSize, width); err != nil {
		s.logger.Error("png encode failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot render board"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) importSnapshot(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	snap, err := history.Deserialize(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.store.SaveSnapshot(gameParam(c), c.Query("label"), snap)
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.logger.Info("snapshot imported", "id", id, "frame", snap.Frame)
	c.JSON(http.StatusCreated, gin.H{
		"id":       id,
		"frame":    snap.Frame,
		"checksum": history.ComputeChecksum(snap.GameState),
	})
}

func (s *Server) deleteSnapshot(c *gin.Context) {
	id, ok := snapshotID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteSnapshot(id); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) stats(c *gin.Context) {
	all, err := s.store.AllStats()
	if err != nil {
		s.storeError(c, err)
		return
	}
	out := gin.H{}
	for id, st := range all {
		out[id] = gin.H{
			"count":      st.Count,
			"firstFrame": st.FirstFrame,
			"lastFrame":  st.LastFrame,
		}
	}
	c.JSON(http.StatusOK, out)
}

// placement previews the deterministic virus list for a seed. minY
// defaults to the seed's last hex digit, as sessions derive it.
func (s *Server) placement(c *gin.Context) {
	seed, err := config.ParseSeed(c.DefaultQuery("seed", strconv.FormatInt(s.cfg.Seed, 10)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minY := virus.MinYFromSeed(seed)
	if raw, ok := c.GetQuery("minY"); ok {
		if minY, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minY must be an integer"})
			return
		}
	}
	count := s.cfg.Viruses.Count
	if raw, ok := c.GetQuery("count"); ok {
		if count, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be an integer"})
			return
		}
	}

	_, placements, err := virus.BuildBoard(s.cfg.Board.Width, s.cfg.Board.Height, count, seed, minY)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "placements": placements})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"seed":       seed,
		"minY":       virus.ClampMinY(minY, s.cfg.Board.Height),
		"placements": placements,
	})
}
