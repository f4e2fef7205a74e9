// Package docs City Tourism Backend API.
//
// Бэкенд муниципальной туристической платформы: точки интереса города,
// таксономия типов/подтипов/удобств, пользователи с ролями, JWT-аутентификация,
// загрузка файлов и отправка писем по шаблонам.
//
// Основные возможности:
// - CRUD точек интереса с мягким удалением и восстановлением
// - Таксономия: типы (с ролями), подтипы, удобства
// - Аутентификация: login/refresh/logout, сброс пароля по почте
// - Загрузка изображений и файлов
// - Отправка писем по HTML-шаблонам
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//
//	Security:
//	- bearer_token:
//
//	SecurityDefinitions:
//	bearer_token:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
