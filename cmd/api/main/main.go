//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/cyphera/cyphera-autotax/apps/api/server"
	"github.com/cyphera/cyphera-autotax/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ginLambda *ginadapter.GinLambda

func init() {
	server.InitializeHandlers()

	r := gin.New()
	r.Use(gin.Recovery())
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.String("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

// @title           Cyphera Autotax API
// @version         1.0
// @description     Vehicle sales and lease tax quotes

// @host      localhost:8000
// @BasePath  /api/v1

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
