// Package http exposes the settlement engine over an echo HTTP server.
// Handlers translate requests into application commands and queries and map
// domain error kinds onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler         commands.PlaceOrderCommandHandler
	deactivateProductHandler  commands.DeactivateProductCommandHandler
	issueCodeHandler          commands.IssueVerificationCodeCommandHandler
	redeemCodeHandler         commands.RedeemVerificationCodeCommandHandler
	fileDisputeHandler        commands.FileDisputeCommandHandler
	beginDisputeReviewHandler commands.BeginDisputeReviewCommandHandler
	resolveDisputeHandler     commands.ResolveDisputeCommandHandler
	addRatingHandler          commands.AddRatingCommandHandler

	// Query handlers
	getActiveProductsHandler   queries.GetActiveProductsQueryHandler
	getMarketplaceStatsHandler queries.GetMarketplaceStatsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	deactivateProductHandler commands.DeactivateProductCommandHandler,
	issueCodeHandler commands.IssueVerificationCodeCommandHandler,
	redeemCodeHandler commands.RedeemVerificationCodeCommandHandler,
	fileDisputeHandler commands.FileDisputeCommandHandler,
	beginDisputeReviewHandler commands.BeginDisputeReviewCommandHandler,
	resolveDisputeHandler commands.ResolveDisputeCommandHandler,
	addRatingHandler commands.AddRatingCommandHandler,
	getActiveProductsHandler queries.GetActiveProductsQueryHandler,
	getMarketplaceStatsHandler queries.GetMarketplaceStatsQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		deactivateProductHandler:   deactivateProductHandler,
		issueCodeHandler:           issueCodeHandler,
		redeemCodeHandler:          redeemCodeHandler,
		fileDisputeHandler:         fileDisputeHandler,
		beginDisputeReviewHandler:  beginDisputeReviewHandler,
		resolveDisputeHandler:      resolveDisputeHandler,
		addRatingHandler:           addRatingHandler,
		getActiveProductsHandler:   getActiveProductsHandler,
		getMarketplaceStatsHandler: getMarketplaceStatsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance. Routes that act
// on behalf of a user go through the identity middleware; catalog reads,
// stats and the health probe stay open.
func (s *Server) RegisterRoutes(e *echo.Echo, identity echo.MiddlewareFunc) {
	api := e.Group("/api/v1")

	api.GET("/products", s.GetProducts)
	api.GET("/stats", s.GetStats)

	authed := api.Group("", identity)
	authed.DELETE("/products/:productID", s.DeactivateProduct)
	authed.POST("/orders", s.PlaceOrder)
	authed.POST("/orders/:orderID/verification", s.IssueVerificationCode)
	authed.POST("/orders/:orderID/verification/redeem", s.RedeemVerificationCode)
	authed.POST("/disputes", s.FileDispute)
	authed.POST("/disputes/:disputeID/review", s.BeginDisputeReview)
	authed.POST("/disputes/:disputeID/resolve", s.ResolveDispute)
	authed.POST("/ratings", s.AddRating)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
}

// PlaceOrderRequest is the body for POST /api/v1/orders.
type PlaceOrderRequest struct {
	ProductID     string     `json:"productId"`
	Quantity      int        `json:"quantity"`
	PickupPointID string     `json:"pickupPointId"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
}

// PlaceOrderResponse returns the identifier of the newly placed order.
type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

// PlaceOrder handles POST /api/v1/orders - reserves stock, creates the order
// and opens the escrow for the authenticated buyer.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	buyerID, ok := CallerID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing caller identity",
		})
	}

	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product ID: "+err.Error())
	}
	pickupPointID, err := kernel.UUIDFromString(req.PickupPointID)
	if err != nil {
		return badRequest(ctx, "Invalid pickup point ID: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID, productID, buyerID, req.Quantity, pickupPointID, req.ScheduledAt,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: orderID.String()})
}

// DeactivateProduct handles DELETE /api/v1/products/:productID - the
// authenticated seller withdraws their listing from the marketplace.
func (s *Server) DeactivateProduct(ctx echo.Context) error {
	sellerID, ok := CallerID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing caller identity",
		})
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productID"))
	if err != nil {
		return badRequest(ctx, "Invalid product ID: "+err.Error())
	}

	cmd, err := commands.NewDeactivateProductCommand(productID, sellerID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.deactivateProductHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerificationCodeResponse carries the code the buyer shows at the handoff.
type VerificationCodeResponse struct {
	Code string `json:"code"`
}

// IssueVerificationCode handles POST /api/v1/orders/:orderID/verification -
// issues (or re-delivers) the order's one-time handoff code to the
// authenticated buyer.
func (s *Server) IssueVerificationCode(ctx echo.Context) error {
	buyerID, ok := CallerID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing caller identity",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewIssueVerificationCodeCommand(orderID, buyerID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	code, err := s.issueCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, VerificationCodeResponse{Code: code})
}

// RedeemVerificationCodeRequest is the body for the redeem endpoint.
type RedeemVerificationCodeRequest struct {
	Code string `json:"code"`
}

// RedeemVerificationCode handles POST /api/v1/orders/:orderID/verification/redeem -
// the authenticated seller enters the buyer's code to settle the order.
func (s *Server) RedeemVerificationCode(ctx echo.Context) error {
	sellerID, ok := CallerID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing caller identity",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req RedeemVerificationCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRedeemVerificationCodeCommand(orderID, sellerID, req.Code)
	if err != nil {
		return badRequest(ctx, "Invalid redemption data: "+err.Error())
	}

	if handleErr := s.redeemCodeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// FileDisputeRequest is the body for POST /api/v1/disputes.
type FileDisputeRequest struct {
	EscrowID    string `json:"escrowId"`
	Description string `json:"description"`
}

// FileDisputeResponse returns the identifier of the filed dispute.
type FileDisputeResponse struct {
	DisputeID string `json:"disputeId"`
}

// FileDispute handles POST /api/v1/disputes - the authenticated party opens a
// dispute against a held escrow.
func (s *Server) FileDispute(ctx echo.Context) error {
	filerID, ok := CallerID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing caller identity",
		})
	}

	var req FileDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	escrowID, err := kernel.UUIDFromString(req.EscrowID)
	if err != nil {
		return badRequest(ctx, "Invalid escrow ID: "+err.Error())
	}

	disputeID := kernel.NewUUID()
	cmd, err := commands.NewFileDisputeCommand(disputeID, escrowID, filerID, req.Description)
	if err != nil {
		return badRequest(ctx, "Invalid dispute data: "+err.Error())
	}

	if handleErr := s.fileDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, FileDisputeResponse{DisputeID: disputeID.String()})
}

// BeginDisputeReview handles POST /api/v1/disputes/:disputeID/review - moves
// an open dispute into review.
func (s *Server) BeginDisputeReview(ctx echo.Context) error {
	disputeID, err := kernel.UUIDFromString(ctx.Param("disputeID"))
	if err != nil {
		return badRequest(ctx, "Invalid dispute ID: "+err.Error())
	}

	cmd, err := commands.NewBeginDisputeReviewCommand(disputeID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.beginDisputeReviewHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// ResolveDisputeRequest is the body for the resolve endpoint. Decision is
// either "release" or "refund".
type ResolveDisputeRequest struct {
	Decision       string `json:"decision"`
	ResolutionText string `json:"resolutionText"`
}

// ResolveDispute handles POST /api/v1/disputes/:disputeID/resolve - records
// the verdict and settles the escrow accordingly.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	disputeID, err := kernel.UUIDFromString(ctx.Param("disputeID"))
	if err != nil {
		return badRequest(ctx, "Invalid dispute ID: "+err.Error())
	}

	var req ResolveDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var decision dispute.Decision
	switch req.Decision {
	case "release":
		decision = dispute.DecisionRelease
	case "refund":
		decision = dispute.DecisionRefund
	default:
		return badRequest(ctx, "Decision must be \"release\" or \"refund\"")
	}

	cmd, err := commands.NewResolveDisputeCommand(disputeID, decision, req.ResolutionText)
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	if handleErr := s.resolveDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// AddRatingRequest is the body for POST /api/v1/ratings.
type AddRatingRequest struct {
	OrderID string  `json:"orderId"`
	RatedID string  `json:"ratedId"`
	Value   float64 `json:"value"`
	Comment *string `json:"comment,omitempty"`
}

// AddRating handles POST /api/v1/ratings - the authenticated party rates
// their counterparty on a settled order.
func (s *Server) AddRating(ctx echo.Context) error {
	raterID, ok := CallerID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing caller identity",
		})
	}

	var req AddRatingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}
	ratedID, err := kernel.UUIDFromString(req.RatedID)
	if err != nil {
		return badRequest(ctx, "Invalid rated user ID: "+err.Error())
	}

	cmd, err := commands.NewAddRatingCommand(orderID, raterID, ratedID, req.Value, req.Comment)
	if err != nil {
		return badRequest(ctx, "Invalid rating data: "+err.Error())
	}

	if handleErr := s.addRatingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// Product is the JSON shape of a catalog listing.
type Product struct {
	ID            string  `json:"id"`
	SellerID      string  `json:"sellerId"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	StandardPrice string  `json:"standardPrice"`
	UnitPrice     string  `json:"unitPrice"`
	Quantity      int     `json:"quantity"`
}

// GetProducts handles GET /api/v1/products - lists active listings.
func (s *Server) GetProducts(ctx echo.Context) error {
	query := queries.NewGetActiveProductsQuery()

	listings, err := s.getActiveProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Product, len(listings))
	for i, listing := range listings {
		response[i] = Product{
			ID:            listing.ID.String(),
			SellerID:      listing.SellerID.String(),
			Name:          listing.Name,
			Description:   listing.Description,
			StandardPrice: listing.StandardPrice.StringFixed(2),
			UnitPrice:     listing.UnitPrice.StringFixed(2),
			Quantity:      listing.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Stats is the JSON shape of the marketplace counters.
type Stats struct {
	ActiveProducts  int64  `json:"activeProducts"`
	TotalOrders     int64  `json:"totalOrders"`
	PendingDisputes int64  `json:"pendingDisputes"`
	HeldAmount      string `json:"heldAmount"`
}

// GetStats handles GET /api/v1/stats - returns marketplace counters.
func (s *Server) GetStats(ctx echo.Context) error {
	query := queries.NewGetMarketplaceStatsQuery()

	stats, err := s.getMarketplaceStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Stats{
		ActiveProducts:  stats.ActiveProducts,
		TotalOrders:     stats.TotalOrders,
		PendingDisputes: stats.PendingDisputes,
		HeldAmount:      stats.HeldAmount.StringFixed(2),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps an application error onto the HTTP status for its kind.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrAuthorization):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrResourceExhausted):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
