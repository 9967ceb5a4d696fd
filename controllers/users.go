package controllers

import (
	"net/http"
	"strings"

	dbpkg "stella/db"
	"stella/models"
	"stella/tools"

	"github.com/gin-gonic/gin"
)

// POST /api/users
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if missing := user.MissingFields(); missing != "" {
		RespondError(c, "campo obrigatório: "+missing, http.StatusBadRequest)
		return
	}

	phone, err := tools.NormalizePhone(user.Phone)
	if err != nil {
		RespondError(c, "telefone inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	user.Phone = phone

	var existing models.User
	if err := db.Where("phone = ?", user.Phone).First(&existing).Error; err == nil {
		RespondError(c, "já existe usuário com esse telefone", http.StatusConflict)
		return
	}

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"user": user})
}

// GET /api/agent/users?phone=
// Lookup por telefone vindo do caller id da ligação inbound.
// 404 é resultado esperado: o agente trata como "pessoa nova" e abre onboarding.
func LookupUserByPhone(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	raw := strings.TrimSpace(c.Query("phone"))
	if raw == "" {
		RespondError(c, "phone é obrigatório", http.StatusBadRequest)
		return
	}

	phone, err := tools.NormalizePhone(raw)
	if err != nil {
		RespondError(c, "telefone inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"user": user})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"user": user})
}
