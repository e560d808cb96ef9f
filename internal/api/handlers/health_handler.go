package handlers

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/version"
)

// getLocalIP returns the non-loopback local IP of the host
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}

type healthResponse struct {
	Status string `json:"status"`
	version.Info
	Store      string `json:"store"`
	InternalIP string `json:"internal_ip"`
}

// HealthHandler responds with build metadata and the active store backend.
func HealthHandler(storeBackend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthResponse{
			Status:     "ok",
			Info:       version.Get(),
			Store:      storeBackend,
			InternalIP: getLocalIP(),
		})
	}
}
