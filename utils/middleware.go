package utils

import (
	"strings"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the user ID from the verified JWT and
// stores it in the request values for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// LandlordOnlyMiddleware ensures the requester holds the landlord role. The
// role comes from the access token, resolved at login time.
func LandlordOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleLandlord {
		CreateForbidden(ctx, "landlord access required")
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// OptionalUserIDMiddleware records the caller's user ID when a valid bearer
// token is present and stays silent otherwise. Used by the room detail view,
// which logs a view stat with a null user for anonymous traffic.
func OptionalUserIDMiddleware(verifier *jwt.Verifier) iris.Handler {
	return func(ctx iris.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			ctx.Next()
			return
		}

		verifiedToken, err := verifier.VerifyToken([]byte(tokenString))
		if err != nil {
			ctx.Next()
			return
		}

		var claims AccessToken
		if err := verifiedToken.Claims(&claims); err != nil {
			ctx.Next()
			return
		}

		ctx.Values().Set("userID", claims.ID)
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the request values,
// or (0, false) for anonymous callers.
func CurrentUserID(ctx iris.Context) (uint, bool) {
	if v := ctx.Values().Get("userID"); v != nil {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	return 0, false
}
