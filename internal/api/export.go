package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prontabot/occ-dashboard/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) getExport(c *gin.Context) {
	occs, snap := h.filtered(c)
	if snap == nil {
		return
	}

	f, err := export.Workbook(occs, h.tz)
	if err != nil {
		slog.Error("building stats workbook failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	defer f.Close()

	name := fmt.Sprintf("occurrences-%s.xlsx", time.Now().In(h.tz).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		slog.Error("writing stats workbook failed", "error", err)
	}
}
