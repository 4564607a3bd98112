package handlers

import (
	"net/http"

	"baf-backend/constants"
	"baf-backend/middleware"
	"baf-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getClaims returns the JWT claims stored by the Auth middleware, or nil
func getClaims(r *http.Request) *utils.Claims {
	return middleware.GetUserFromContext(r.Context())
}

// RequireMethod checks the HTTP method. Writes the error and returns false on mismatch.
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
		return false
	}
	return true
}

// ParseProgramID extracts and validates program_id from the URL vars.
func ParseProgramID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["program_id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidProgramID)
		return primitive.NilObjectID, false
	}
	return id, true
}

// ParseObjectIDVar extracts and validates an ObjectID from the vars (configurable key and error message).
func ParseObjectIDVar(w http.ResponseWriter, vars map[string]string, key, errMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(vars[key])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, errMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}
