package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"travelbook/database/cache"
	packageRepo "travelbook/database/repository/travelpackage"
	"travelbook/models"
	"travelbook/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// PackageHandler is the public, read-only browse surface over the package
// content store. List pages are cached by TTL; packages are written out of
// band so there is no invalidation path.
type PackageHandler struct {
	repo     packageRepo.PackageRepository
	cache    cache.BookingCache
	cacheTTL time.Duration
}

func NewPackageHandler(repo packageRepo.PackageRepository, c cache.BookingCache, ttl time.Duration) *PackageHandler {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PackageHandler{repo: repo, cache: c, cacheTTL: ttl}
}

// ListPackages returns a page of active packages.
func (h *PackageHandler) ListPackages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	data, err := h.cache.GetOrCompute(c.Request.Context(), cache.PackagesKey(page, limit), h.cacheTTL,
		func(ctx context.Context) (interface{}, error) {
			items, total, err := h.repo.List(ctx, page, limit)
			if err != nil {
				return nil, err
			}
			return gin.H{
				"items":      items,
				"pagination": models.NewPagination(total, page, limit),
			}, nil
		})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list packages", "")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// GetPackage returns one active package by id.
func (h *PackageHandler) GetPackage(c *gin.Context) {
	pkg, err := h.repo.FindActiveByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Package not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load package", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}
