/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"net/http"

	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/reason"
	"google.golang.org/grpc/codes"
)

// Notice texts shown for the built-in kinds.
const (
	NoticeUnauthorized = "Session expired, please log in again"
	NoticeNetwork      = "Network error, please check your connection"
	NoticeTimeout      = "Request timed out, please try again"
	NoticeUnknown      = "An unexpected error occurred"
)

// defaultHTTP is the status an edge writes for a kind when nothing more
// specific applies.
var defaultHTTP = map[code.Code]int{
	code.Unauthorized: http.StatusUnauthorized,
	code.ClientError:  http.StatusBadRequest,
	code.NetworkError: http.StatusServiceUnavailable,
	code.TimeoutError: http.StatusGatewayTimeout,
	code.Unknown:      http.StatusInternalServerError,
}

var defaultGRPC = map[code.Code]codes.Code{
	code.Unauthorized: codes.Unauthenticated,
	code.ClientError:  codes.InvalidArgument,
	code.NetworkError: codes.Unavailable,
	code.TimeoutError: codes.DeadlineExceeded,
	code.Unknown:      codes.Unknown,
}

// defaultNotice leaves ClientError empty: its notice is the error's own
// "Request failed with status: N" message.
var defaultNotice = map[code.Code]string{
	code.Unauthorized: NoticeUnauthorized,
	code.NetworkError: NoticeNetwork,
	code.TimeoutError: NoticeTimeout,
	code.Unknown:      NoticeUnknown,
}

// defaultPrefixes refine the per-kind defaults by reason.
var defaultPrefixes = []struct {
	kind   code.Code
	prefix string
	http   int
	grpc   codes.Code
}{
	{code.Unauthorized, string(reason.StatusForbidden), http.StatusForbidden, codes.PermissionDenied},
	{code.ClientError, string(reason.StatusServer), http.StatusBadGateway, codes.Internal},
	{code.ClientError, string(reason.TransportOther), http.StatusBadGateway, codes.Unavailable},
	{code.ClientError, string(reason.RequestInvalid), http.StatusBadRequest, codes.InvalidArgument},
}
