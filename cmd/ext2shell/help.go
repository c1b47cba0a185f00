package main

const helpText = `commands:
  info                       volume and group statistics
  ls [path]                  list directory entries
  pwd                        print the current directory
  cd <path>                  change the current directory
  cat <path>                 print a regular file's contents
  attr <path>                print an entry's attributes
  touch <path>                create a file, or refresh an existing one
  mkdir <path>                create a directory
  rm <path>                  remove a regular file
  rmdir <path>               remove an empty directory
  rename <path> <newname>    rename an entry in place
  cp <src> <dst>              copy a file out to the host
  mv <src> <dst>              copy a file out to the host, then remove it
  print <sub> [arg]           dump raw superblock/group/inode/block/bitmap state
  help                       show this text
  exit, quit                 leave the shell
`
