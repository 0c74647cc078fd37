package api

import (
	"net/http"
	"strconv"

	"foodcart/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (s *Server) listProducts(c *gin.Context) {
	products, err := services.ListAvailableProducts(c.Request.Context())
	if err != nil {
		log.Err(err).Msg("list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, gin.H{
			"id":             p.ID,
			"name":           p.Name,
			"category":       p.Category,
			"price":          p.Price,
			"special_status": p.SpecialStatus,
			"ingredients":    p.Ingredients,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) registerOrder(c *gin.Context) {
	var input services.RegisterOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidateRegisterOrder(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := services.RegisterOrder(c.Request.Context(), input)
	if err != nil {
		log.Err(err).Msg("register order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if s.notifier != nil {
		order, err := services.GetOrder(c.Request.Context(), id)
		if err != nil {
			log.Warn().Err(err).Int64("order_id", id).Msg("skipping order notification: reload failed")
		} else {
			go s.notifier.NotifyNewOrder(order)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) listOrderSummaries(c *gin.Context) {
	summaries, err := services.LoadAndAssemble(c.Request.Context(), s.matcher)
	if err != nil {
		log.Err(err).Msg("assemble order summaries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) markOrderProcessed(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	if err := services.MarkOrderProcessed(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "processed"})
}
