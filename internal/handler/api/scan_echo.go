package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"SajuPulse/internal/domain/models"
	"SajuPulse/internal/service/metrics"
	"SajuPulse/internal/usecase"
	xhttp "SajuPulse/pkg/http"
	xlogger "SajuPulse/pkg/logger"
)

const streamWriteWait = 5 * time.Second

func (h *EngineHandler) Scan(c echo.Context) error {
	defer metrics.Observe("scan", time.Now())
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.invalid(c, "scan", verr)
	}

	var cached models.ScanReport
	key, hit := h.lookup(c, "scan", req, &cached)
	if hit {
		return xhttp.SuccessResponse(c, &cached)
	}

	params, err := usecase.ScanParamsFromRequest(*req)
	if err != nil {
		return h.fail(c, "scan", err)
	}
	report, err := h.scans.Run(c.Request().Context(), params)
	if err != nil {
		return h.fail(c, "scan", err)
	}
	if !report.Partial {
		h.store(c, key, report)
	}
	return xhttp.SuccessResponse(c, report)
}

// StreamMessage is one websocket frame of a streamed scan.
type StreamMessage struct {
	Type string      `json:"type"` // period, report or error
	Data interface{} `json:"data"`
}

// ScanStream upgrades to a websocket, reads one ScanRequest frame and
// pushes every classified month as it is fed, followed by the report.
// Closing the socket cancels the scan.
func (h *EngineHandler) ScanStream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		metrics.Fail("scan_stream", "upgrade")
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()
	defer metrics.Observe("scan_stream", time.Now())

	req := &models.ScanRequest{}
	if err := conn.ReadJSON(req); err != nil {
		metrics.Fail("scan_stream", "validation")
		h.writeFrame(conn, "error", []xhttp.ValidationError{{Code: "ERR_BAD_FRAME", Message: err.Error()}})
		return nil
	}
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	if err := xhttp.ValidateStruct(ctx, req); err != nil {
		metrics.Fail("scan_stream", "validation")
		h.writeFrame(conn, "error", xhttp.ValidationErrors(err))
		return nil
	}
	params, err := usecase.ScanParamsFromRequest(*req)
	if err != nil {
		metrics.Fail("scan_stream", "invalid")
		h.writeFrame(conn, "error", []*xhttp.AppError{appError(err)})
		return nil
	}

	// The reader only watches for the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	var writeErr error
	params.OnPeriod = func(sp models.ScannedPeriod) {
		if writeErr != nil {
			return
		}
		if writeErr = h.writeFrame(conn, "period", sp); writeErr != nil {
			cancel()
		}
	}
	report, err := h.scans.Run(ctx, params)
	if err != nil {
		kind := "internal"
		if isBadRequest(err) {
			kind = "invalid"
		}
		metrics.Fail("scan_stream", kind)
		h.writeFrame(conn, "error", []*xhttp.AppError{appError(err)})
		return nil
	}
	if writeErr != nil {
		h.logger.Info("scan stream client gone",
			xlogger.String("report_id", report.ID),
			xlogger.Int("scanned", report.Scanned),
		)
		return nil
	}
	if err := h.writeFrame(conn, "report", report); err == nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
			time.Now().Add(streamWriteWait))
	}
	return nil
}

func (h *EngineHandler) writeFrame(conn *websocket.Conn, kind string, data interface{}) error {
	b, err := json.Marshal(StreamMessage{Type: kind, Data: data})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}
