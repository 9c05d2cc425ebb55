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

package controllers

import (
	"net/http"
	"testing"

	"github.com/notepool/notepool/pkg/assert"
	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/buildinfo"
	"github.com/notepool/notepool/pkg/server/testutils"
)

func TestHealth(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", "/health", "")
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusOK, "getting health")

	var got healthResponse
	mustUnmarshalBody(t, res, &got)
	assert.Equal(t, got.Status, "ok", "status mismatch")
	assert.Equal(t, got.Version, buildinfo.Version, "version mismatch")
}

func TestNotFoundRoute(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	req := testutils.MakeReq(server.URL, "GET", "/v1/nonexistent", "")
	res := testutils.HTTPDo(t, req)
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "getting unknown route")
}

func TestNewRouter_invalidApp(t *testing.T) {
	a := app.App{}

	_, err := NewRouter(&a, nil)
	assert.ErrorIs(t, err, app.ErrEmptyDB, "error mismatch")
}
