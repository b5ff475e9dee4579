// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.StdErr
package compileinfoprint

import "github.com/jaclyn-taroni/2023-mdibl-fair/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
