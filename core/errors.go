// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "errors"

var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyTool indicates the Tool field is empty.
	ErrEmptyTool = errors.New("tool cannot be empty")

	// ErrEmptyAction indicates the Action field is empty.
	ErrEmptyAction = errors.New("action cannot be empty")

	// ErrDuplicateRecord indicates two records share the same (tool, action) pair.
	ErrDuplicateRecord = errors.New("duplicate (tool, action) pair")
)
