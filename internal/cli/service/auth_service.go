package service

import (
	"fmt"

	"ClipKeeper/internal/cli/api"
	"ClipKeeper/internal/config"
)

type credentialsDTO struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register регистрирует пользователя на сервере синхронизации и сохраняет
// полученный auth-токен.
func Register(cfg *config.Config, login, password string) error {
	resp, body, err := api.PostJSON(cfg.ServerURL+"/api/user/register", credentialsDTO{Login: login, Password: password}, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return api.PersistAuthFromResponse(resp)
}

// Login выполняет вход и сохраняет полученный auth-токен.
func Login(cfg *config.Config, login, password string) error {
	resp, body, err := api.PostJSON(cfg.ServerURL+"/api/user/login", credentialsDTO{Login: login, Password: password}, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}
	return api.PersistAuthFromResponse(resp)
}
