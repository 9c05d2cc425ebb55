/* Copyright (C) 2024, 2025 Notepool contributors
 *
 * This file is part of Notepool.
 *
 * Notepool is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * Notepool is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with Notepool.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package testutils provides utilities used in tests
package testutils

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/notepool/notepool/pkg/server/database"
	"github.com/notepool/notepool/pkg/server/helpers"
)

// TestAuthTokenSecret is the token signing secret used by test apps
const TestAuthTokenSecret = "test-token-secret"

// InitMemoryDB creates an in-memory SQLite database with the schema initialized
func InitMemoryDB(t *testing.T) *gorm.DB {
	// Use file-based in-memory database with unique UUID per test to avoid sharing
	uuid, err := helpers.GenUUID()
	if err != nil {
		t.Fatalf("failed to generate UUID for test database: %v", err)
	}
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid)
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	database.InitSchema(db)

	return db
}

// SetupUserData creates and returns a new user for testing purposes
func SetupUserData(db *gorm.DB, email string) database.User {
	uuid, err := helpers.GenUUID()
	if err != nil {
		panic(errors.Wrap(err, "Failed to generate UUID"))
	}

	user := database.User{
		Sub:    database.ToNullString(uuid),
		Email:  email,
		Role:   database.RoleStudent,
		Points: database.DefaultPoints,
	}

	if err := db.Save(&user).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare user"))
	}

	return user
}

// SetupAdminData creates and returns a new admin user for testing purposes
func SetupAdminData(db *gorm.DB, email string) database.User {
	user := SetupUserData(db, email)

	if err := db.Model(&user).Updates(map[string]interface{}{
		"role":     "admin",
		"is_admin": true,
	}).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare admin"))
	}
	user.Role = "admin"
	user.IsAdmin = true

	return user
}

// SetupCourseData creates and returns a new course for testing purposes
func SetupCourseData(db *gorm.DB, code, school, title string) database.Course {
	course := database.Course{
		Code:   code,
		School: school,
		Title:  title,
	}

	if err := db.Save(&course).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare course"))
	}

	return course
}

// SetupNoteData creates and returns a new note for testing purposes
func SetupNoteData(db *gorm.DB, author database.User, course database.Course, title string, price int) database.Note {
	uuid, err := helpers.GenUUID()
	if err != nil {
		panic(errors.Wrap(err, "Failed to generate UUID"))
	}

	note := database.Note{
		AuthorID:   author.ID,
		CourseID:   course.ID,
		Title:      title,
		CourseName: course.Title,
		Semester:   "2024S2",
		ObjectKey:  database.ToNullString(fmt.Sprintf("%s.pdf", uuid)),
		FileType:   "application/pdf",
		Price:      price,
		IsFree:     price == 0,
	}

	if err := db.Save(&note).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare note"))
	}

	return note
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		// Do not follow redirects so that redirects themselves can be tested
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// SetReqAuthHeader sets the authorization header in the given request for the given user
func SetReqAuthHeader(t *testing.T, req *http.Request, user database.User) {
	claims := jwt.MapClaims{
		"sub":   user.Sub.String,
		"email": user.Email,
		"name":  user.Name.String,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if user.IsAdmin {
		claims["is_admin"] = true
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(TestAuthTokenSecret))
	if err != nil {
		t.Fatal(errors.Wrap(err, "signing token"))
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signed))
}

// HTTPAuthDo makes an HTTP request with an appropriate authorization header for a user
func HTTPAuthDo(t *testing.T, req *http.Request, user database.User) *http.Response {
	SetReqAuthHeader(t, req, user)

	return HTTPDo(t, req)
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))

	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MakeJSONReq makes an HTTP request carrying a JSON body
func MakeJSONReq(endpoint, method, path, data string) *http.Request {
	req := MakeReq(endpoint, method, path, data)
	req.Header.Set("Content-Type", "application/json")

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}
