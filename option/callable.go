// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "reflect"

// isCallable reports whether v is a function value, the Go analogue
// of Python's callable(v) used by CallbackOpt.is_valid.
func isCallable(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Func
}
