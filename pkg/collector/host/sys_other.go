// Copyright (c) 2025, The monitor-server Authors.  All rights reserved.
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

//go:build !linux

package host

import (
	"fmt"
	"runtime"
)

func kernelRelease() (string, error) {
	return "", fmt.Errorf("kernel release not supported on %s", runtime.GOOS)
}

func statfs(string) (uint64, uint64, error) {
	return 0, 0, fmt.Errorf("statfs not supported on %s", runtime.GOOS)
}
