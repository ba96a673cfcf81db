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

// Package classify turns raw transport outcomes into either the response
// body or a *apiflow.Error, surfacing a notice for every error and
// escalating authentication failures to a login redirect.
//
// Decision table for completed responses, first match wins:
//
//	401, 403  unauthorized   notice, then ReplaceAll(login) after 500ms
//	>= 400    client_error   "Request failed with status: N"
//	else      success        body returned
//
// Failures that produced no status are classified by cause: deadline to
// timeout_error, connectivity to network_error, anything else to
// client_error.
//
// Escalation happens at most once per request when the request context
// carries a guard (see WithGuard). A newer escalation replaces a pending
// redirect.
package classify
