package command

// Pwd returns the reconstructed absolute path of the current working
// directory.
func Pwd(ctx *Context) (string, error) {
	return ctx.FS.AbsolutePath(ctx.Cwd)
}
