/*
 * logging.go, part of goqmc.
 *
 *
 * Copyright 2024 The goqmc Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package qmc

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logmu  sync.RWMutex
	logger = zap.NewNop()
)

//Logger returns the logger used by goqmc packages. It discards everything
//until SetLogger is called.
func Logger() *zap.Logger {
	logmu.RLock()
	defer logmu.RUnlock()
	return logger
}

//SetLogger installs l as the goqmc logger. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logmu.Lock()
	logger = l
	logmu.Unlock()
}
